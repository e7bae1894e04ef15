package pslq

import "math/big"

// checkInputs validates x: length, strict sortedness, positivity.
// Returns the sum of squares of x (s_sq[0] in the notation of the
// underlying algebra), which the precision check and HBuilder both
// need, so the guard computes it once.
func checkInputs(x []big.Float, prec uint) (sumSquares *big.Float, err error) {
	n := len(x)
	if n < 2 {
		return nil, ErrInputTooShort
	}
	sumSquares = new(big.Float).SetPrec(prec)
	var sq big.Float
	sq.SetPrec(prec)
	for i := range x {
		xi := &x[i]
		if xi.Sign() == 0 {
			return nil, ErrInputHasZero
		}
		if xi.Sign() < 0 {
			return nil, ErrInputNonPositive
		}
		if i > 0 && xi.Cmp(&x[i-1]) <= 0 {
			return nil, ErrInputNotSorted
		}
		sq.Mul(xi, xi)
		sumSquares.Add(sumSquares, &sq)
	}
	return sumSquares, nil
}

// checkGamma validates gamma and derives tau: gamma > 2/sqrt(3)
// strictly, and tau = 1/sqrt(1/4 + 1/gamma^2) must lie strictly in
// (1, 2).
func checkGamma(gamma *big.Float, prec uint) (tau *big.Float, err error) {
	three := new(big.Float).SetPrec(prec).SetInt64(3)
	var sqrt3 big.Float
	sqrt3.SetPrec(prec)
	sqrtBig(three, &sqrt3)
	lowerBound := new(big.Float).SetPrec(prec).SetInt64(2)
	lowerBound.Quo(lowerBound, &sqrt3)
	if gamma.Cmp(lowerBound) <= 0 {
		return nil, ErrGammaOutOfRange
	}

	quarter := new(big.Float).SetPrec(prec).SetFloat64(0.25)
	gammaSq := new(big.Float).SetPrec(prec).Mul(gamma, gamma)
	invGammaSq := new(big.Float).SetPrec(prec).Quo(big.NewFloat(1).SetPrec(prec), gammaSq)
	sum := new(big.Float).SetPrec(prec).Add(quarter, invGammaSq)
	tau = new(big.Float).SetPrec(prec)
	sqrtBig(sum, tau)
	tau.Quo(big.NewFloat(1).SetPrec(prec), tau)

	one := new(big.Float).SetPrec(prec).SetInt64(1)
	two := new(big.Float).SetPrec(prec).SetInt64(2)
	if tau.Cmp(one) <= 0 || tau.Cmp(two) >= 0 {
		return nil, ErrTauOutOfRange
	}
	return tau, nil
}

// checkPrecision enforces the "max_norm^2 * ||x||^2 < 1/eps" rule. On
// violation it reports the maximum permissible max_norm at the current
// precision: 1/sqrt(||x||^2 * eps).
func checkPrecision(maxNorm *big.Float, sumSquares *big.Float, prec uint) error {
	eps := epsilon(prec)
	invEps := new(big.Float).SetPrec(prec).Quo(big.NewFloat(1).SetPrec(prec), eps)

	lhs := new(big.Float).SetPrec(prec).Mul(maxNorm, maxNorm)
	lhs.Mul(lhs, sumSquares)
	if lhs.Cmp(invEps) < 0 {
		return nil
	}

	bound := new(big.Float).SetPrec(prec).Mul(sumSquares, eps)
	sqrtBound := new(big.Float).SetPrec(prec)
	sqrtBig(bound, sqrtBound)
	maxAllowed := new(big.Float).SetPrec(prec).Quo(big.NewFloat(1).SetPrec(prec), sqrtBound)
	f, _ := maxAllowed.Float64()
	return &PrecisionInsufficientError{MaxAllowedNorm: f}
}
