package service

import (
	"context"
	"time"

	"github.com/and161185/todo-graph/internal/errs"
	"github.com/and161185/todo-graph/internal/limiter"
	"github.com/and161185/todo-graph/internal/model"
	"github.com/and161185/todo-graph/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeUsers struct {
	byID map[uuid.UUID]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byID[u.ID]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byID[u.ID] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeUsers) AppendTodoID(_ context.Context, id, todoID uuid.UUID) error {
	u, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.TodoIDs = append(u.TodoIDs, todoID)
	return nil
}

func (f *fakeUsers) RemoveTodoID(_ context.Context, id, todoID uuid.UUID) error {
	u, ok := f.byID[id]
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

type fakeTodos struct {
	byID map[uuid.UUID]*model.Todo

	createErr error
}

var _ repository.TodoRepository = (*fakeTodos)(nil)

func newFakeTodos() *fakeTodos {
	return &fakeTodos{byID: map[uuid.UUID]*model.Todo{}}
}

func (f *fakeTodos) Create(_ context.Context, t *model.Todo) error {
	if f.createErr != nil {
		return f.createErr
	}
	cpy := *t
	f.byID[t.ID] = &cpy
	return nil
}

func (f *fakeTodos) GetByID(_ context.Context, id uuid.UUID) (*model.Todo, error) {
	if t, ok := f.byID[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, errs.ErrNotFound
}

func (f *fakeTodos) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	var out []model.Todo
	for _, t := range f.byID {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodos) Update(_ context.Context, id uuid.UUID, patch model.TodoPatch) (*model.Todo, error) {
	t, ok := f.byID[id]
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
	c := *t
	return &c, nil
}

func (f *fakeTodos) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}

func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}
