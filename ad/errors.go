package ad

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable half of the error taxonomy:
// shape mismatches and domain errors. Invariant violations are not
// errors — they are fatal, see log.go.

// ErrShapeMismatch is returned (wrapped) when a caller-provided
// input or adjoint vector disagrees in length with the tape's
// number of independents or dependents.
var ErrShapeMismatch = errors.New("ad: shape mismatch")

// DomainError reports that a driver encountered an elementary
// operation outside its domain: Ln of a non-positive value, Div by
// zero, or Tan at a pole. It identifies the offending tape index so
// the caller can locate the failing expression.
type DomainError struct {
	Op     OpType
	Index  int
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("ad: domain error at tape index %d (op %d): %s",
		e.Index, e.Op, e.Reason)
}

func shapeMismatch(driver string, want, got int, kind string) error {
	return fmt.Errorf("ad: %s: want %d %s, got %d: %w",
		driver, want, kind, got, ErrShapeMismatch)
}
