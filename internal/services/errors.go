package services

import (
	"errors"
	"fmt"

	"github.com/archivo-digital/apiserver/internal/store"
)

var (
	// ErrValidation marks input the caller must fix.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks an attempt to create something that already exists.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks credentials that do not match.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = store.ErrNotFound
)

// ClientError carries a message that is safe to return to API clients.
// errors.Is matches it against its Kind.
type ClientError struct {
	Kind    error
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Kind
}

func clientError(kind error, format string, args ...any) error {
	return &ClientError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ClientMessage returns the client-safe message of err, or fallback when err
// carries none.
func ClientMessage(err error, fallback string) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Message
	}
	return fallback
}
