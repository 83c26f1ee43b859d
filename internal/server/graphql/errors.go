package graphql

import (
	"errors"

	"github.com/and161185/todo-graph/internal/errs"
	"go.uber.org/zap"
)

// GraphQL error extension codes surfaced to clients.
const (
	codeBadUserInput    = "BAD_USER_INPUT"
	codeNotFound        = "NOT_FOUND"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeForbidden       = "FORBIDDEN"
	codeRateLimited     = "RATE_LIMITED"
	codeInternal        = "INTERNAL_SERVER_ERROR"
)

// apiError carries a machine-readable code into the GraphQL "extensions"
// object. It satisfies gqlerrors.ExtendedError.
type apiError struct {
	msg  string
	code string
}

func (e *apiError) Error() string { return e.msg }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// mapError converts service sentinels into client-visible typed failures.
// Not-found and not-owner stay distinct kinds. Unknown errors are logged
// and masked as internal.
func (r *Resolvers) mapError(err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrAlreadyExists):
		return &apiError{msg: err.Error(), code: codeBadUserInput}
	case errors.Is(err, errs.ErrNotFound):
		return &apiError{msg: "not found", code: codeNotFound}
	case errors.Is(err, errs.ErrNoCredential), errors.Is(err, errs.ErrInvalidToken), errors.Is(err, errs.ErrBadCredentials):
		return &apiError{msg: err.Error(), code: codeUnauthenticated}
	case errors.Is(err, errs.ErrNotOwner):
		return &apiError{msg: "not authorized", code: codeForbidden}
	case errors.Is(err, errs.ErrRateLimited):
		return &apiError{msg: "too many attempts, try again later", code: codeRateLimited}
	default:
		r.log.Error("resolver failure", zap.Error(err))
		return &apiError{msg: "internal error", code: codeInternal}
	}
}
