// Package ad implements an operator-overloading automatic
// differentiation engine for smooth and abs-factorable scalar
// functions.
//
// A Context records the elementary operations performed on its
// ActiveScalar values onto a Tape: arithmetic, the transcendentals,
// and the non-smooth abs/min/max. Freezing a Context yields an
// immutable Tape that can be replayed by the package-level drivers
// — ZeroOrder, FirstOrder, FirstOrderReverse, Jacobian,
// JacobianReverse — to obtain function values, tangents, adjoints
// and dense Jacobians, and by Tape.AbsDecompose/AbsNormal to obtain
// the abs-normal form of a non-smooth tape at a point.
//
// A single Context and the ActiveScalar values it produced must
// not be used concurrently from more than one goroutine while still
// recording. Once frozen, a Tape is immutable and safe to read from
// multiple goroutines; distinct driver calls against the same Tape
// may run in parallel without synchronization.
package ad
