package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a numeric parameter (block size,
	// color count) is out of its supported range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptyBuffer is returned for zero-dimension or length-mismatched buffers.
	ErrEmptyBuffer = errors.New("empty or malformed buffer")
)

// ParamError describes a rejected parameter. It unwraps to ErrInvalidParameter.
type ParamError struct {
	Name   string
	Value  int
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%d %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// CheckRange returns a *ParamError unless lo <= v <= hi.
func CheckRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &ParamError{Name: name, Value: v, Reason: fmt.Sprintf("outside [%d, %d]", lo, hi)}
	}
	return nil
}

// CheckPositive returns a *ParamError unless v >= 1.
func CheckPositive(name string, v int) error {
	if v <= 0 {
		return &ParamError{Name: name, Value: v, Reason: "must be positive"}
	}
	return nil
}
