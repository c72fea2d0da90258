package chart

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoContainer  = errors.New("chart: no container")
	ErrDetached     = errors.New("chart: container has no measured size")
	ErrNotMounted   = errors.New("chart: not mounted")
	ErrMounted      = errors.New("chart: already mounted")
	ErrInvalidValue = errors.New("chart: invalid value")
)

// ValidationError reports the first data point that cannot be drawn.
type ValidationError struct {
	Index int
	Label string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("chart: invalid value %v for %q at index %d", e.Value, e.Label, e.Index)
}

// Cause lets errors.Cause reach the sentinel.
func (e *ValidationError) Cause() error { return ErrInvalidValue }

func (e *ValidationError) Unwrap() error { return ErrInvalidValue }
