package graphql

import (
	"context"
	"time"

	"github.com/and161185/todo-graph/internal/errs"
	"github.com/and161185/todo-graph/internal/limiter"
	"github.com/and161185/todo-graph/internal/model"
	"github.com/and161185/todo-graph/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// In-memory repositories backing end-to-end schema tests.

type memUsers struct{ byID map[uuid.UUID]*model.User }

var _ repository.UserRepository = (*memUsers)(nil)

func newMemUsers() *memUsers { return &memUsers{byID: map[uuid.UUID]*model.User{}} }

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := m.byID[u.ID]; ok {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	cpy.CreatedAt = time.Now()
	cpy.UpdatedAt = cpy.CreatedAt
	m.byID[u.ID] = &cpy
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, errs.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	u.UpdatedAt = time.Now()
	c := *u
	return &c, nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memUsers) AppendTodoID(_ context.Context, id, todoID uuid.UUID) error {
	if u, ok := m.byID[id]; ok {
		u.TodoIDs = append(u.TodoIDs, todoID)
		return nil
	}
	return errs.ErrNotFound
}

func (m *memUsers) RemoveTodoID(_ context.Context, id, todoID uuid.UUID) error {
	u, ok := m.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	out := u.TodoIDs[:0]
	for _, tid := range u.TodoIDs {
		if tid != todoID {
			out = append(out, tid)
		}
	}
	u.TodoIDs = out
	return nil
}

type memTodos struct{ byID map[uuid.UUID]*model.Todo }

var _ repository.TodoRepository = (*memTodos)(nil)

func newMemTodos() *memTodos { return &memTodos{byID: map[uuid.UUID]*model.Todo{}} }

func (m *memTodos) Create(_ context.Context, t *model.Todo) error {
	cpy := *t
	cpy.CreatedAt = time.Now()
	cpy.UpdatedAt = cpy.CreatedAt
	m.byID[t.ID] = &cpy
	return nil
}

func (m *memTodos) GetByID(_ context.Context, id uuid.UUID) (*model.Todo, error) {
	if t, ok := m.byID[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, errs.ErrNotFound
}

func (m *memTodos) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	var out []model.Todo
	for _, t := range m.byID {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTodos) Update(_ context.Context, id uuid.UUID, patch model.TodoPatch) (*model.Todo, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now()
	c := *t
	return &c, nil
}

func (m *memTodos) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

type noopLimiter struct{}

var _ limiter.Limiter = noopLimiter{}

func (noopLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	return true, 0, nil
}
func (noopLimiter) Success(context.Context, string, []byte) error { return nil }
func (noopLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	return false, 0, nil
}
