// Package server provides the HTTP API for panel layout optimization.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/piwi3910/FormPanel/internal/engine"
)

// ErrUnsupportedFormat indicates an export format the service cannot produce
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported export format: %s", e.Format)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var unsupported *ErrUnsupportedFormat
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &unsupported):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrUnknownPrimary):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
