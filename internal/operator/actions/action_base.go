package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

// IAction is one write operation. Perform runs inside a single storage
// transaction; returning an error rolls the whole transaction back.
// Collections names the parts of the store the action mutates, so live
// subscribers can be refreshed after commit.
type IAction interface {
	Perform(ctx context.Context, writer storage.Writer) error
	Collections() []string
}

// ValidationError marks a write rejected before any state change. Callers
// surface it as a user-facing warning rather than a server failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
