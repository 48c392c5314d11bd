// Package apperr defines the error taxonomy shared by services and handlers.
// Handlers translate these into HTTP status codes in exactly one place
// (pkg/response); services never touch status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthenticated indicates a missing, invalid or expired credential,
	// or a deactivated identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates a valid identity with insufficient role.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a uniqueness violation on create.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable indicates an external collaborator is unreachable.
	ErrUnavailable = errors.New("unavailable")
)

// InsufficientStockError rejects an OUT movement that would drive quantity
// negative. It names the product and both quantities so the caller can
// self-correct without a follow-up read.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}
