package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputType signals coefficients that are not an ordered sequence of finite numbers.
	ErrInvalidInputType = errors.New("invalid input type")
	// ErrInvalidCoefficientCount signals a coefficient vector whose length is not 12.
	ErrInvalidCoefficientCount = errors.New("invalid coefficient count")
	// ErrRootComputation signals a numerical failure while computing roots.
	ErrRootComputation = errors.New("root computation error")
	// ErrNoRealRoots signals that a plot was requested for a polynomial without real roots.
	ErrNoRealRoots = errors.New("no real roots")
)

// CoefficientCountError wraps ErrInvalidCoefficientCount with the received count.
type CoefficientCountError struct {
	Got  int
	Want int
}

func (e *CoefficientCountError) Error() string {
	return fmt.Sprintf("%s: need %d coefficients, got %d", ErrInvalidCoefficientCount.Error(), e.Want, e.Got)
}

func (e *CoefficientCountError) Unwrap() error { return ErrInvalidCoefficientCount }

// NewCoefficientCount creates a coefficient count error.
func NewCoefficientCount(got, want int) error {
	return &CoefficientCountError{Got: got, Want: want}
}

// RootComputationError wraps ErrRootComputation with the underlying cause.
type RootComputationError struct {
	Cause error
}

func (e *RootComputationError) Error() string {
	if e.Cause == nil {
		return ErrRootComputation.Error()
	}
	return fmt.Sprintf("%s: %v", ErrRootComputation.Error(), e.Cause)
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *RootComputationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrRootComputation}
	}
	return []error{ErrRootComputation, e.Cause}
}

// NewRootComputation creates a root computation error.
func NewRootComputation(cause error) error {
	return &RootComputationError{Cause: cause}
}

// InvalidInputTypef wraps ErrInvalidInputType with a formatted detail.
func InvalidInputTypef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInputType, fmt.Sprintf(format, args...))
}
