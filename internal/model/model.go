// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Tokens collects an issued access token and its expiry.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // token expiry (for diagnostics)
}

// User represents an account. Passwords are never stored in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Username  string
	Email     string      // unique, checked at registration
	PwdHash   []byte      // Argon2id(password, Salt)
	Salt      []byte      // per-user auth salt
	TodoIDs   []uuid.UUID // denormalized list of owned todo ids (best-effort)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Todo is a single to-do item owned by exactly one user.
type Todo struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID // FK -> users.id, immutable after create
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoPatch carries the optional fields of an update; nil means "leave unchanged".
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// UserPatch carries the optional fields of a profile update.
type UserPatch struct {
	Username *string
	Email    *string
}
