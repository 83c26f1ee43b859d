// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/todo-graph/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides CRUD access to user accounts.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns all users.
	List(ctx context.Context) ([]model.User, error)
	// Update applies the non-nil fields of the patch and returns the updated user.
	Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error)
	// Delete removes a user; reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// AppendTodoID adds a todo id to the user's denormalized list.
	AppendTodoID(ctx context.Context, id, todoID uuid.UUID) error
	// RemoveTodoID removes a todo id from the user's denormalized list.
	RemoveTodoID(ctx context.Context, id, todoID uuid.UUID) error
}
