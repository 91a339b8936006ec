package services

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when checkout is attempted with no items.
var ErrEmptyCart = errors.New("cart is empty")

// ErrMalformedSnapshot is returned when an imported backup document does not
// parse into the expected shape.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// ValidationError reports bad caller input. Recoverable: the caller should
// fix the named field and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
