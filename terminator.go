package pslq

import "math/big"

// terminationStatus is the Terminator's verdict after one round.
type terminationStatus struct {
	relationIndex int // index i such that |y[i]| < threshold, or -1
	normBound     *big.Float
	warnings      []error
	halt          bool // NB >= max_norm: certified no relation below bound
}

// checkTermination scans y for a
// near-zero entry (relation found), computes the norm bound from H's
// diagonal, and flags the caller's max_norm as reached.
func checkTermination(H [][]big.Float, y []big.Float, n int, prec uint, opts *Options, maxNorm, prevNormBound *big.Float) *terminationStatus {
	status := &terminationStatus{relationIndex: -1}

	for i := 0; i < n; i++ {
		abs := new(big.Float).SetPrec(prec).Abs(&y[i])
		if abs.Cmp(opts.relationThreshold) < 0 {
			status.relationIndex = i
			break
		}
	}

	maxDiag := new(big.Float).SetPrec(prec)
	for i := 0; i < n-1; i++ {
		abs := new(big.Float).SetPrec(prec).Abs(&H[i][i])
		if abs.Cmp(maxDiag) > 0 {
			maxDiag.Set(abs)
		}
	}
	if maxDiag.Sign() == 0 {
		status.normBound = new(big.Float).SetPrec(prec)
	} else {
		status.normBound = new(big.Float).SetPrec(prec).Quo(big.NewFloat(1).SetPrec(prec), maxDiag)
	}

	if prevNormBound != nil && status.normBound.Cmp(prevNormBound) < 0 {
		prev, _ := prevNormBound.Float64()
		cur, _ := status.normBound.Float64()
		status.warnings = append(status.warnings, &NormBoundDecreasedError{Previous: prev, Current: cur})
	}

	if status.normBound.Cmp(maxNorm) >= 0 {
		status.halt = true
	}
	return status
}

// extractRelation builds the Term slice for ledger column i and checks
// the residual against its tolerance. Returns the relation terms
// and, if the residual exceeds tolerance, a LargeResidualError warning
// (the relation is still returned -- the warning is non-fatal).
func extractRelation(col []big.Int, x []big.Float, prec uint, residualFactor int64) ([]Term, error) {
	n := len(col)
	residual := new(big.Float).SetPrec(prec)
	absSum := new(big.Float).SetPrec(prec)
	for j := 0; j < n; j++ {
		cj := new(big.Float).SetPrec(prec).SetInt(&col[j])
		term := new(big.Float).SetPrec(prec).Mul(cj, &x[j])
		residual.Add(residual, term)
		absTerm := new(big.Float).SetPrec(prec).Abs(term)
		absSum.Add(absSum, absTerm)
	}
	residual.Abs(residual)
	bound := new(big.Float).SetPrec(prec).Mul(epsilon(prec), absSum)
	bound.Mul(bound, new(big.Float).SetPrec(prec).SetInt64(residualFactor))

	// Normalise so the first non-zero coefficient is positive.
	sign := 0
	for j := 0; j < n; j++ {
		if s := col[j].Sign(); s != 0 {
			sign = s
			break
		}
	}
	if sign < 0 {
		for j := 0; j < n; j++ {
			col[j].Neg(&col[j])
		}
	}

	var terms []Term
	for j := 0; j < n; j++ {
		if col[j].Sign() == 0 {
			continue
		}
		c := new(big.Int).Set(&col[j])
		v := new(big.Float).SetPrec(prec).Set(&x[j])
		terms = append(terms, Term{Coeff: c, Value: v})
	}

	if residual.Cmp(bound) > 0 {
		r, _ := residual.Float64()
		b, _ := bound.Float64()
		return terms, &LargeResidualError{Residual: r, Bound: b}
	}
	return terms, nil
}
