// Package service contains application services for authentication, users and todos.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgcrypto "github.com/and161185/todo-graph/internal/crypto"
	"github.com/and161185/todo-graph/internal/errs"
	"github.com/and161185/todo-graph/internal/limiter"
	"github.com/and161185/todo-graph/internal/model"
	"github.com/and161185/todo-graph/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService turns credentials into an authenticated identity and back.
type AuthService interface {
	// Register creates a new user with secure password hashing and issues a token.
	Register(ctx context.Context, username, email, password string) (model.Tokens, *model.User, error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, *model.User, error)
	// ResolveIdentity verifies a raw Authorization header value and returns the caller id.
	ResolveIdentity(raw string) (uuid.UUID, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	signKey  []byte
	tokenTTL time.Duration
	lim      limiter.Limiter
	validate *validator.Validate
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, tokenTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:    users,
		signKey:  signKey,
		tokenTTL: tokenTTL,
		lim:      lim,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type registerInput struct {
	Username string `validate:"required,min=2,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Register creates a new account. Email uniqueness is checked here,
// not by a database constraint; the lost-race window is tolerated.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (model.Tokens, *model.User, error) {
	in := registerInput{Username: username, Email: email, Password: password}
	if err := s.validate.Struct(in); err != nil {
		return model.Tokens{}, nil, fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.Tokens{}, nil, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.Tokens{}, nil, err
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return model.Tokens{}, nil, err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return model.Tokens{}, nil, err
	}

	u := &model.User{
		ID:       uid,
		Username: username,
		Email:    email,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), salt),
		Salt:     salt,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return model.Tokens{}, nil, err
	}

	tok, err := s.issueToken(uid)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	return tok, u, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip).
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, *model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	if !allowed {
		return model.Tokens{}, nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.Salt, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, nil, errs.ErrRateLimited
		}
		// hide whether the account exists
		return model.Tokens{}, nil, errs.ErrBadCredentials
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	tok, err := s.issueToken(u.ID)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	return tok, u, nil
}

// ResolveIdentity strips an optional "Bearer " prefix, verifies the HS256
// signature and expiry, and returns the embedded user id. This is the single
// authorization gate used by every protected operation.
func (s *AuthServiceImpl) ResolveIdentity(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	// Match the scheme word alone too: "Bearer" with nothing after it is an
	// absent credential, not an opaque token named "Bearer".
	if len(raw) >= 6 && strings.EqualFold(raw[:6], "bearer") && (len(raw) == 6 || raw[6] == ' ') {
		raw = strings.TrimSpace(raw[6:])
	}
	if raw == "" {
		return uuid.Nil, errs.ErrNoCredential
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, errs.ErrInvalidToken
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.ErrInvalidToken
	}
	return id, nil
}

// issueToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueToken(userID uuid.UUID) (model.Tokens, error) {
	now := time.Now()
	exp := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: signed, ExpiresAt: exp}, nil
}
