package pslq

import "math/big"

// buildHY constructs the normalised vector y and the lower-trapezoidal
// matrix H from x via a suffix-sum construction, then runs the
// HBuilder's post-construction self-checks. x is 0-indexed, length
// n; H is n x (n-1); y is length n.
//
// A failure of the H/y self-checks or of the y-underflow check is
// reported as ErrInternalInvariantViolated, not as a caller-input
// error: by the time buildHY runs, checkInputs has already validated
// x. Two consecutive y values within ulpCloseness ULPs are reported as
// a *PrecisionInsufficientError with Reason set.
func buildHY(x []big.Float, sumSquares *big.Float, prec uint, ulpCloseness int64) (y []big.Float, H [][]big.Float, err error) {
	n := len(x)

	// Partial suffix sums s_sq[i] = sum_{k>=i} x_k^2, computed back to
	// front so each step is one multiply-add.
	sSq := newVector(n, prec)
	sSq[n-1].Mul(&x[n-1], &x[n-1])
	for i := n - 2; i >= 0; i-- {
		var sq big.Float
		sq.SetPrec(prec).Mul(&x[i], &x[i])
		sSq[i].Add(&sSq[i+1], &sq)
	}

	s := newVector(n, prec)
	for i := range s {
		sqrtBig(&sSq[i], &s[i])
	}

	y = newVector(n, prec)
	for i := range x {
		y[i].Quo(&x[i], &s[0])
	}

	H = newMatrix(n, n-1, prec)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n-1; j++ {
			H[i][j].SetInt64(0)
		}
		if i < n-1 {
			if s[i].Sign() == 0 {
				return nil, nil, ErrInternalInvariantViolated
			}
			H[i][i].Quo(&s[i+1], &s[i])
		}
		for j := 0; j < i; j++ {
			denom := new(big.Float).SetPrec(prec).Mul(&s[j], &s[j+1])
			if denom.Sign() == 0 {
				return nil, nil, ErrInternalInvariantViolated
			}
			num := new(big.Float).SetPrec(prec).Mul(&x[i], &x[j])
			num.Neg(num)
			H[i][j].Quo(num, denom)
		}
	}

	if err := verifyHY(H, y, n, prec); err != nil {
		return nil, nil, err
	}
	if err := verifyYSpread(y, prec, ulpCloseness); err != nil {
		return nil, nil, err
	}
	return y, H, nil
}

// verifyHY checks ||H||_F^2 == n-1 and y.H == 0 to within a
// sqrt(eps)-scaled tolerance.
func verifyHY(H [][]big.Float, y []big.Float, n int, prec uint) error {
	sqrtEps := new(big.Float).SetPrec(prec)
	sqrtBig(epsilon(prec), sqrtEps)

	frobSq := new(big.Float).SetPrec(prec)
	for i := 0; i < n; i++ {
		for j := 0; j < n-1; j++ {
			var sq big.Float
			sq.SetPrec(prec).Mul(&H[i][j], &H[i][j])
			frobSq.Add(frobSq, &sq)
		}
	}
	target := new(big.Float).SetPrec(prec).SetInt64(int64(n - 1))
	diff := new(big.Float).SetPrec(prec).Sub(frobSq, target)
	diff.Abs(diff)
	tolFrob := new(big.Float).SetPrec(prec).Mul(sqrtEps, target)
	if diff.Cmp(tolFrob) > 0 {
		return ErrInternalInvariantViolated
	}

	for j := 0; j < n-1; j++ {
		col := new(big.Float).SetPrec(prec)
		for i := 0; i < n; i++ {
			var term big.Float
			term.SetPrec(prec).Mul(&y[i], &H[i][j])
			col.Add(col, &term)
		}
		col.Abs(col)
		col.Quo(col, target)
		if col.Cmp(sqrtEps) > 0 {
			return ErrInternalInvariantViolated
		}
	}
	return nil
}

// verifyYSpread rejects y vectors where some entry has underflowed to
// the precision floor, or where two consecutive (sorted) entries are
// within ulpCloseness ULPs of each other -- the caller's constants
// would be indistinguishable at this precision.
func verifyYSpread(y []big.Float, prec uint, ulpCloseness int64) error {
	eps := epsilon(prec)
	for i := range y {
		abs := new(big.Float).SetPrec(prec).Abs(&y[i])
		if abs.Cmp(eps) < 0 {
			return ErrInternalInvariantViolated
		}
	}
	for i := 1; i < len(y); i++ {
		if ulpDistance(&y[i], &y[i-1], prec) <= ulpCloseness {
			return &PrecisionInsufficientError{
				Reason: "two input values are too close together to distinguish at this precision",
			}
		}
	}
	return nil
}
