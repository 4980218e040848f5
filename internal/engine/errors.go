package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned when the castings handed to Run are
	// malformed. The concrete error is an *InputError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownPrimary is returned when the primary casting name does not
	// match any supplied casting.
	ErrUnknownPrimary = errors.New("unknown primary casting")

	// ErrCatalogMisconfigured is returned when the standard width list is
	// empty or contains non-positive widths. It is a startup error.
	ErrCatalogMisconfigured = errors.New("panel catalog misconfigured")
)

// InputError locates a validation failure in the input data.
// Side is 1-based; zero means the error is not about a single side.
type InputError struct {
	Casting string
	Shape   string
	Side    int
	Reason  string
}

func (e *InputError) Error() string {
	var loc []string
	if e.Casting != "" {
		loc = append(loc, fmt.Sprintf("casting %q", e.Casting))
	}
	if e.Shape != "" {
		loc = append(loc, fmt.Sprintf("shape %q", e.Shape))
	}
	if e.Side > 0 {
		loc = append(loc, fmt.Sprintf("side %d", e.Side))
	}
	if len(loc) == 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, strings.Join(loc, ", "), e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
