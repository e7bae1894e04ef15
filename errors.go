// Implements PSLQ algorithm for integer relation detection.
//
// This code was originally ported from the sympy identification.py module to Go,
// then reworked around the error taxonomy, component boundaries and diagnostics
// contract of the single-level PSLQ algorithm published by Ferguson, Bailey and Arno.
package pslq

// Original code: Copyright (c) 2006-2014 SymPy Development Team
// Modifications: Copyright (c) 2014-2015 Nick Craig-Wood

import (
	"errors"
	"fmt"
)

// Sentinel errors. Each is a distinct kind per the error taxonomy; check
// with errors.Is.
var (
	ErrInputTooShort    = errors.New("pslq: need at least 2 input values")
	ErrInputNotSorted   = errors.New("pslq: input values must be strictly increasing")
	ErrInputNonPositive = errors.New("pslq: input values must be positive")
	ErrInputHasZero     = errors.New("pslq: input values must be non-zero")
	ErrGammaOutOfRange  = errors.New("pslq: gamma must be > 2/sqrt(3)")
	ErrTauOutOfRange    = errors.New("pslq: tau derived from gamma must lie strictly in (1, 2)")
	ErrCancelled        = errors.New("pslq: cancelled")

	// ErrIterationBudgetExceeded is the emergency abort: the round count
	// passed 10x the advertised budget without the norm bound reaching
	// max_norm and without a relation being found. Distinct from the
	// normal "no relation below max_norm" outcome, which is a
	// successful Ok(None), not an error.
	ErrIterationBudgetExceeded = errors.New("pslq: exceeded emergency iteration budget without terminating")

	// ErrInternalInvariantViolated is returned when a HBuilder
	// post-condition fails or a zero divisor appears inside the
	// iteration. It indicates a bug, not a malformed caller input. A
	// decreasing norm bound is reported as a NormBoundDecreasedError
	// warning, not as this error.
	ErrInternalInvariantViolated = errors.New("pslq: internal invariant violated")
)

// PrecisionInsufficientError is returned by the PrecisionGuard when the
// caller's max-norm bound cannot be distinguished from round-off at the
// current working precision, or by the HBuilder (Reason set,
// MaxAllowedNorm zero) when two input values are too close together to
// distinguish at all.
// MaxAllowedNorm is the largest bound the guard would have accepted.
type PrecisionInsufficientError struct {
	MaxAllowedNorm float64
	Reason         string
}

func (e *PrecisionInsufficientError) Error() string {
	if e.Reason != "" {
		return "pslq: precision insufficient: " + e.Reason
	}
	return fmt.Sprintf("pslq: precision insufficient for the requested max norm; "+
		"at this precision max_norm cannot exceed %g", e.MaxAllowedNorm)
}

// IntegerOverflowError is returned when a ledger entry's magnitude
// exceeds what the working precision can distinguish from round-off
// bookkeeping error, i.e. the integer side of the computation has run
// so far ahead of the real side that the relation it would report can
// no longer be trusted.
type IntegerOverflowError struct {
	BitLen int
	Target int
}

func (e *IntegerOverflowError) Error() string {
	return fmt.Sprintf("pslq: integer ledger entry has grown to %d bits, exceeding "+
		"the %d-bit target for this precision", e.BitLen, e.Target)
}

// LargeResidualError is attached to a successful Result as a non-fatal
// warning: the discovered relation's residual exceeds the tolerance
// derived from epsilon, which usually means the caller's constants are
// not specified to the full accuracy their big.Float precision implies.
type LargeResidualError struct {
	Residual float64
	Bound    float64
}

func (e *LargeResidualError) Error() string {
	return fmt.Sprintf("pslq: relation found but residual %g exceeds tolerable bound %g "+
		"(inputs may not carry full declared precision)", e.Residual, e.Bound)
}

// NormBoundDecreasedError is attached as a non-fatal warning when the
// norm bound decreases round-over-round. Monotonicity is expected but
// not load-bearing for correctness of a returned relation.
type NormBoundDecreasedError struct {
	Previous float64
	Current  float64
}

func (e *NormBoundDecreasedError) Error() string {
	return fmt.Sprintf("pslq: norm bound decreased from %g to %g", e.Previous, e.Current)
}
