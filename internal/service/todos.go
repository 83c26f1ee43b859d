package service

import (
	"context"
	"errors"

	"github.com/and161185/todo-graph/internal/errs"
	"github.com/and161185/todo-graph/internal/model"
	"github.com/and161185/todo-graph/internal/repository"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// TodoService defines ownership-gated CRUD over to-do items.
type TodoService interface {
	// Create stores a new item owned by the caller.
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Todo, error)
	// Get returns the caller's item; items of other users report not-found.
	Get(ctx context.Context, callerID, id uuid.UUID) (*model.Todo, error)
	// ListForOwner returns all items owned by the given user.
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	// Update applies the patch to the caller's item.
	Update(ctx context.Context, callerID, id uuid.UUID, patch model.TodoPatch) (*model.Todo, error)
	// Delete removes the caller's item; reports whether it was removed.
	Delete(ctx context.Context, callerID, id uuid.UUID) (bool, error)
}

type TodoServiceImpl struct {
	todos repository.TodoRepository
	users repository.UserRepository
	log   *zap.Logger
}

// NewTodoService constructs TodoService.
func NewTodoService(todos repository.TodoRepository, users repository.UserRepository, log *zap.Logger) *TodoServiceImpl {
	return &TodoServiceImpl{todos: todos, users: users, log: log}
}

// Create always stamps the owner from the caller, never from input.
// The owner's denormalized todo id list is updated best-effort: the two
// writes are independent and a failure of the second is only logged.
func (s *TodoServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Todo, error) {
	if ownerID == uuid.Nil {
		return nil, errs.ErrNoCredential
	}
	if title == "" {
		return nil, errs.ErrValidation
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &model.Todo{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Completed:   false,
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := s.users.AppendTodoID(ctx, ownerID, id); err != nil {
		s.log.Warn("append todo id", zap.Stringer("user", ownerID), zap.Error(err))
	}
	return t, nil
}

// Get loads a single item for its owner. An existing item owned by someone
// else reports not-found, not forbidden, to avoid leaking existence.
func (s *TodoServiceImpl) Get(ctx context.Context, callerID, id uuid.UUID) (*model.Todo, error) {
	if callerID == uuid.Nil {
		return nil, errs.ErrNoCredential
	}
	t, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != callerID {
		return nil, errs.ErrNotFound
	}
	return t, nil
}

// ListForOwner returns all items whose owner equals ownerID.
func (s *TodoServiceImpl) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	if ownerID == uuid.Nil {
		return nil, errs.ErrNoCredential
	}
	return s.todos.ListByOwner(ctx, ownerID)
}

// Update applies only the fields present in the patch after the ownership gate.
func (s *TodoServiceImpl) Update(ctx context.Context, callerID, id uuid.UUID, patch model.TodoPatch) (*model.Todo, error) {
	if callerID == uuid.Nil {
		return nil, errs.ErrNoCredential
	}
	if err := s.checkOwner(ctx, callerID, id); err != nil {
		return nil, err
	}
	return s.todos.Update(ctx, id, patch)
}

// Delete removes the item after the ownership gate and best-effort removes
// its id from the owner's denormalized list.
func (s *TodoServiceImpl) Delete(ctx context.Context, callerID, id uuid.UUID) (bool, error) {
	if callerID == uuid.Nil {
		return false, errs.ErrNoCredential
	}
	if err := s.checkOwner(ctx, callerID, id); err != nil {
		return false, err
	}
	removed, err := s.todos.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		if err := s.users.RemoveTodoID(ctx, callerID, id); err != nil {
			s.log.Warn("remove todo id", zap.Stringer("user", callerID), zap.Error(err))
		}
	}
	return removed, nil
}

// checkOwner distinguishes not-found from not-owner; the two are reported
// as different error kinds on every mutating path.
func (s *TodoServiceImpl) checkOwner(ctx context.Context, callerID, id uuid.UUID) error {
	t, err := s.todos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotFound
		}
		return err
	}
	if t.OwnerID != callerID {
		return errs.ErrNotOwner
	}
	return nil
}
