package service

import (
	"context"

	"github.com/and161185/todo-graph/internal/errs"
	"github.com/and161185/todo-graph/internal/model"
	"github.com/and161185/todo-graph/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// UserService defines account lookups and self-only profile mutations.
type UserService interface {
	// Get returns an account by id (no ownership gate).
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	// List returns all accounts (no ownership gate).
	List(ctx context.Context) ([]model.User, error)
	// UpdateSelf applies a profile patch to the caller's own account.
	UpdateSelf(ctx context.Context, callerID uuid.UUID, patch model.UserPatch) (*model.User, error)
	// DeleteSelf removes the caller's own account.
	DeleteSelf(ctx context.Context, callerID uuid.UUID) (bool, error)
}

type UserServiceImpl struct {
	users repository.UserRepository
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

// Get is an ungated lookup by id.
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List is an ungated listing of all accounts.
func (s *UserServiceImpl) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UpdateSelf mutates only the caller's own account. There is no
// administrative update-by-arbitrary-id path.
func (s *UserServiceImpl) UpdateSelf(ctx context.Context, callerID uuid.UUID, patch model.UserPatch) (*model.User, error) {
	if callerID == uuid.Nil {
		return nil, errs.ErrNoCredential
	}
	return s.users.Update(ctx, callerID, patch)
}

// DeleteSelf removes only the caller's own account.
func (s *UserServiceImpl) DeleteSelf(ctx context.Context, callerID uuid.UUID) (bool, error) {
	if callerID == uuid.Nil {
		return false, errs.ErrNoCredential
	}
	return s.users.Delete(ctx, callerID)
}
