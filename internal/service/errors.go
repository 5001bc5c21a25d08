package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/internal/auth"
	"github.com/kisankhidmat/khidmat/internal/images"
	"github.com/kisankhidmat/khidmat/internal/ledger"
)

// ErrValidation marks a request with missing or malformed input.
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// toConnectError maps store and auth errors onto Connect codes. Anything not
// recognised is an I/O failure and is reported as retryable.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrAlreadyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ErrValidation),
		errors.Is(err, ledger.ErrIndexOutOfRange),
		errors.Is(err, ledger.ErrInvalidPhone),
		errors.Is(err, images.ErrEmptyImage):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	default:
		return connect.NewError(connect.CodeUnavailable, err)
	}
}
