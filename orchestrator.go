package pslq

import (
	"context"
	"math"
	"math/big"
)

// DefaultGamma returns the recommended default convergence parameter,
// 2/sqrt(3) + 0.01, at the given precision.
func DefaultGamma(prec uint) *big.Float {
	three := new(big.Float).SetPrec(prec).SetInt64(3)
	sqrt3 := new(big.Float).SetPrec(prec)
	sqrtBig(three, sqrt3)
	gamma := new(big.Float).SetPrec(prec).SetInt64(2)
	gamma.Quo(gamma, sqrt3)
	gamma.Add(gamma, new(big.Float).SetPrec(prec).SetFloat64(0.01))
	return gamma
}

// Run is the core's public entry point: given a vector
// x of high-precision reals, sorted strictly increasing and positive,
// it searches for a non-zero integer relation r with |r.x| small,
// certified to within maxNorm's Euclidean-norm bound, using the
// convergence parameter gamma.
//
// A successful search that finds no relation below maxNorm returns a
// nil-Relation Result and a nil error: this is the "ran to bound, no
// relation" outcome, distinct from a rejected input.
// ctx is checked once per round, at its start, before the pivot is
// selected; a cancelled context aborts with ErrCancelled.
func Run(ctx context.Context, x []big.Float, maxNorm, gamma *big.Float, opts ...Option) (*Result, error) {
	n := len(x)
	if n < 2 {
		return nil, ErrInputTooShort
	}
	prec := x[0].Prec()
	for i := range x {
		if p := x[i].Prec(); p > prec {
			prec = p
		}
	}

	sumSquares, err := checkInputs(x, prec)
	if err != nil {
		return nil, err
	}
	tau, err := checkGamma(gamma, prec)
	if err != nil {
		return nil, err
	}
	if err := checkPrecision(maxNorm, sumSquares, prec); err != nil {
		return nil, err
	}

	o := defaultOptions(prec)
	for _, opt := range opts {
		opt(o)
	}

	y, H, err := buildHY(x, sumSquares, prec, o.ulpCloseness)
	if err != nil {
		return nil, err
	}

	overflowBits := int(prec) * 4
	l := newLedger(n, overflowBits)
	if err := fullReduce(H, y, l, n, prec); err != nil {
		return nil, err
	}

	maxSteps := o.maxSteps
	if maxSteps <= 0 {
		maxSteps = iterationBudget(n, gamma, tau, maxNorm, prec)
	}
	emergencyLimit := maxSteps * 10

	result := &Result{}
	var normBound *big.Float
	for iteration := 0; iteration < emergencyLimit; iteration++ {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}

		if err := runRound(H, y, l, gamma, n, prec); err != nil {
			return nil, err
		}

		status := checkTermination(H, y, n, prec, o, maxNorm, normBound)
		normBound = status.normBound
		result.Warnings = append(result.Warnings, status.warnings...)

		nb, _ := status.normBound.Float64()
		be := bestError(y, prec)
		beF, _ := be.Float64()
		result.History = append(result.History, Round{Iteration: iteration, NormBound: new(big.Float).SetFloat64(nb), BestError: new(big.Float).SetFloat64(beF)})
		result.Iterations = iteration + 1

		if status.relationIndex >= 0 {
			col := l.column(status.relationIndex)
			terms, warnErr := extractRelation(col, x, prec, o.residualFactor)
			if warnErr != nil {
				result.Warnings = append(result.Warnings, warnErr)
			}
			result.Relation = terms
			return result, nil
		}
		if status.halt {
			return result, nil
		}
	}
	return nil, ErrIterationBudgetExceeded
}

// bestError returns the smallest |y_i|, the quantity the Terminator
// would compare against the relation threshold.
func bestError(y []big.Float, prec uint) *big.Float {
	best := new(big.Float).SetPrec(prec).Abs(&y[0])
	for i := 1; i < len(y); i++ {
		abs := new(big.Float).SetPrec(prec).Abs(&y[i])
		if abs.Cmp(best) < 0 {
			best = abs
		}
	}
	return best
}

// iterationBudget computes the advertised round bound:
// ceil(C(n,2) * log(gamma^(n-1) * max_norm) / log(tau)).
func iterationBudget(n int, gamma, tau, maxNorm *big.Float, prec uint) int {
	binom := float64(n * (n - 1) / 2)
	g, _ := gamma.Float64()
	t, _ := tau.Float64()
	mn, _ := maxNorm.Float64()

	logArg := math.Pow(g, float64(n-1)) * mn
	if logArg <= 0 || t <= 1 {
		return 1000
	}
	budget := binom * math.Log(logArg) / math.Log(t)
	if budget < 1 {
		budget = 1
	}
	return int(math.Ceil(budget))
}
