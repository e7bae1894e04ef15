package pslq

import "math/big"

// Term pairs a non-zero integer coefficient with the original real
// value it multiplies in a discovered relation.
type Term struct {
	Coeff *big.Int
	Value *big.Float
}

// Round records the Terminator's state after a single completed round,
// so a caller can inspect convergence without the core ever writing to
// stdout/stderr.
type Round struct {
	Iteration int
	NormBound *big.Float
	BestError *big.Float
}

// Result is the Orchestrator's return value. Relation is nil when no
// relation was certified below MaxNorm; this is a successful outcome,
// not an error -- "ran to bound, no relation" is distinct from
// "rejected before running".
type Result struct {
	Relation  []Term
	History   []Round
	Warnings  []error
	Iterations int
}

// Options carries the tunables an implementation is allowed to expose,
// all defaulted to the values the algorithm's design calls for.
type Options struct {
	maxSteps          int
	relationThreshold *big.Float // default eps^(15/16)
	residualFactor    int64      // default 16, multiplies eps*S in the residual test
	ulpCloseness      int64      // default 2, consecutive sorted y_i within this many ULPs are rejected
}

// Option configures a Run call.
type Option func(*Options)

// WithMaxSteps overrides the emergency iteration budget multiplier's
// base step count. If unset, the budget is computed from
// ceil(C(n,2)*log(gamma^(n-1)*max_norm)/log(tau)).
func WithMaxSteps(n int) Option {
	return func(o *Options) { o.maxSteps = n }
}

// WithRelationThreshold overrides the empirical eps^(15/16) cutoff used
// to decide a y_i is indistinguishable from zero.
func WithRelationThreshold(t *big.Float) Option {
	return func(o *Options) { o.relationThreshold = t }
}

// WithResidualFactor overrides the 16 in the residual test
// |rho| > 16*eps*S.
func WithResidualFactor(f int64) Option {
	return func(o *Options) { o.residualFactor = f }
}

// WithULPCloseness overrides the default of 2 ULPs: consecutive sorted
// y_i at most this many ULPs apart are rejected.
func WithULPCloseness(ulps int64) Option {
	return func(o *Options) { o.ulpCloseness = ulps }
}

func defaultOptions(prec uint) *Options {
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	// eps^(15/16): computed via exponent scaling rather than a
	// transcendental pow, since the core requires no transcendentals.
	// eps = 2^-prec exactly (up to rounding), so
	// eps^(15/16) = 2^(-prec*15/16).
	exp := -int((int64(prec) * 15) / 16)
	threshold := new(big.Float).SetPrec(prec).SetMantExp(one, exp)
	return &Options{
		maxSteps:          0,
		relationThreshold: threshold,
		residualFactor:    16,
		ulpCloseness:      2,
	}
}
