package postgres

import (
	"context"
	"errors"

	"github.com/and161185/todo-graph/internal/errs"
	"github.com/and161185/todo-graph/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// TodoRepo implements TodoRepository using PostgreSQL.
type TodoRepo struct{ db *DB }

// NewTodoRepo constructs a todo repository.
func NewTodoRepo(db *DB) *TodoRepo { return &TodoRepo{db: db} }

// Create inserts a new todo row.
func (r *TodoRepo) Create(ctx context.Context, t *model.Todo) error {
	const q = `
INSERT INTO todos (id, owner_id, title, description, completed)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, t.ID, t.OwnerID, t.Title, t.Description, t.Completed)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a todo by ID regardless of owner.
func (r *TodoRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	const q = `
SELECT id, owner_id, title, description, completed, created_at, updated_at
FROM todos WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var t model.Todo
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByOwner returns all todos owned by the given user, oldest first.
func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	const q = `
SELECT id, owner_id, title, description, completed, created_at, updated_at
FROM todos WHERE owner_id=$1
ORDER BY created_at`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update applies the non-nil patch fields and returns the updated todo.
// Nil patch fields are sent as NULL and leave the column unchanged.
func (r *TodoRepo) Update(ctx context.Context, id uuid.UUID, patch model.TodoPatch) (*model.Todo, error) {
	const q = `
UPDATE todos
SET title       = COALESCE($2, title),
    description = COALESCE($3, description),
    completed   = COALESCE($4, completed),
    updated_at  = now()
WHERE id=$1
RETURNING id, owner_id, title, description, completed, created_at, updated_at`
	row := r.db.Pool.QueryRow(ctx, q, id, patch.Title, patch.Description, patch.Completed)
	var t model.Todo
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes a todo row; reports whether a row was removed.
func (r *TodoRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM todos WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
