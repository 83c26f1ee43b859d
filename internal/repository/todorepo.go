package repository

import (
	"context"

	"github.com/and161185/todo-graph/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TodoRepository provides CRUD access to to-do items.
// Ownership checks live in the service layer; lookups here are by id.
type TodoRepository interface {
	// Create inserts a new todo.
	Create(ctx context.Context, t *model.Todo) error
	// GetByID loads a todo by ID regardless of owner.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error)
	// ListByOwner returns all todos owned by the given user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	// Update applies the non-nil fields of the patch and returns the updated todo.
	Update(ctx context.Context, id uuid.UUID, patch model.TodoPatch) (*model.Todo, error)
	// Delete removes a todo; reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
