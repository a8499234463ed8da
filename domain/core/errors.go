package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Construction errors
	ErrInvalidData  = errors.New("invalid data arrangement")
	ErrEmptyGroup   = fmt.Errorf("%w: empty group", ErrInvalidData)
	ErrShape        = fmt.Errorf("%w: shape mismatch", ErrInvalidData)
	ErrZeroExpected = fmt.Errorf("%w: zero expected frequency", ErrInvalidData)

	// Estimation errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotYetEstimated = errors.New("no estimation run has occurred")

	// Variant binding errors
	ErrUnimplementedVariant = errors.New("unimplemented variant")
)

// Error constructors with context

func NewInvalidDataError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, reason)
}

func NewShapeError(want, got string) error {
	return fmt.Errorf("%w: want %s, got %s", ErrShape, want, got)
}

func NewEmptyGroupError(group string) error {
	return fmt.Errorf("%w: %s", ErrEmptyGroup, group)
}

func NewInvalidArgumentError(arg string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, arg, reason)
}

func NewUnimplementedVariantError(kind, name string) error {
	return fmt.Errorf("%w: no %s bound (%s)", ErrUnimplementedVariant, kind, name)
}

// Error checking helpers

func IsInvalidDataError(err error) bool {
	return errors.Is(err, ErrInvalidData)
}

func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsNotYetEstimatedError(err error) bool {
	return errors.Is(err, ErrNotYetEstimated)
}

func IsUnimplementedVariantError(err error) bool {
	return errors.Is(err, ErrUnimplementedVariant)
}
