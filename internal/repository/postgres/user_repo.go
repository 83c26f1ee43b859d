package postgres

import (
	"context"
	"errors"

	"github.com/and161185/todo-graph/internal/errs"
	"github.com/and161185/todo-graph/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, username, email, pwd_hash, salt)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Username, u.Email, u.PwdHash, u.Salt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID, including the denormalized todo id list.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT id, username, email, pwd_hash, salt, todo_ids::text[], created_at, updated_at
FROM users WHERE id=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, username, email, pwd_hash, salt, todo_ids::text[], created_at, updated_at
FROM users WHERE email=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, email))
}

// List returns all users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	const q = `
SELECT id, username, email, pwd_hash, salt, todo_ids::text[], created_at, updated_at
FROM users ORDER BY created_at`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var (
			u   model.User
			ids []string
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PwdHash, &u.Salt, &ids, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.TodoIDs = parseTodoIDs(ids)
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update applies the non-nil patch fields and returns the updated user.
func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	const q = `
UPDATE users
SET username = COALESCE($2, username),
    email    = COALESCE($3, email),
    updated_at = now()
WHERE id=$1
RETURNING id, username, email, pwd_hash, salt, todo_ids::text[], created_at, updated_at`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, id, patch.Username, patch.Email))
}

// Delete removes a user row.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM users WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AppendTodoID adds a todo id to the denormalized list (no-op if already present).
func (r *UserRepo) AppendTodoID(ctx context.Context, id, todoID uuid.UUID) error {
	const q = `
UPDATE users
SET todo_ids = array_append(todo_ids, $2)
WHERE id=$1 AND NOT ($2 = ANY(todo_ids))`
	_, err := r.db.Pool.Exec(ctx, q, id, todoID)
	return err
}

// RemoveTodoID removes a todo id from the denormalized list.
func (r *UserRepo) RemoveTodoID(ctx context.Context, id, todoID uuid.UUID) error {
	const q = `UPDATE users SET todo_ids = array_remove(todo_ids, $2) WHERE id=$1`
	_, err := r.db.Pool.Exec(ctx, q, id, todoID)
	return err
}

func (r *UserRepo) scanUser(row pgx.Row) (*model.User, error) {
	var (
		u   model.User
		ids []string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PwdHash, &u.Salt, &ids, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	u.TodoIDs = parseTodoIDs(ids)
	return &u, nil
}

func parseTodoIDs(ids []string) []uuid.UUID {
	var out []uuid.UUID
	for _, s := range ids {
		tid, err := uuid.FromString(s)
		if err != nil {
			continue // skip malformed entries, the list is a convenience projection
		}
		out = append(out, tid)
	}
	return out
}
