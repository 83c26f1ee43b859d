// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed or incomplete input.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists indicates a uniqueness violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoCredential indicates a protected operation was called without a token.
	ErrNoCredential = errors.New("authentication required")

	// ErrInvalidToken indicates a token that failed verification or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrBadCredentials indicates a failed login (unknown email or wrong password).
	ErrBadCredentials = errors.New("bad credentials")

	// ErrNotOwner indicates a valid identity acting on a record it does not own.
	ErrNotOwner = errors.New("not the owner")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
