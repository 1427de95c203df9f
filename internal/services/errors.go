package services

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for the operation layer. Handlers translate these to HTTP
// statuses at the boundary; anything else is an internal error.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnavailable        = errors.New("temporarily unavailable")
)

// mapDependencyErr surfaces dependency timeouts as ErrUnavailable so the
// boundary can answer 503 instead of a generic 500.
func mapDependencyErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
