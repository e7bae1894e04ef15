package pslq

import "math/big"

// reduceStep performs one Hermite size-reduction step at (i, j): it
// computes t = round(H[i][j]/H[j][j]) once, and if t != 0 applies the
// identical t to H's row i (columns 0..j), to y[j], and to the ledger.
// This is the single place t is computed: the real-side and
// integer-side t must never be derived independently.
func reduceStep(H [][]big.Float, y []big.Float, l *ledger, i, j int, prec uint) error {
	if H[j][j].Sign() == 0 {
		return ErrInternalInvariantViolated
	}
	quotient := new(big.Float).SetPrec(prec).Quo(&H[i][j], &H[j][j])
	var t big.Int
	nearestInt(quotient, &t)
	if t.Sign() == 0 {
		return nil
	}
	tFloat := new(big.Float).SetPrec(prec).SetInt(&t)

	for k := 0; k <= j; k++ {
		var tmp big.Float
		tmp.SetPrec(prec).Mul(&H[j][k], tFloat)
		H[i][k].Sub(&H[i][k], &tmp)
	}
	var tmp big.Float
	tmp.SetPrec(prec).Mul(&y[i], tFloat)
	y[j].Add(&y[j], &tmp)

	return l.reduceRow(i, j, &t)
}

// fullReduce performs the initial full Hermite reduction: for i from
// 1 to n-1, for j from i-1 down to 0.
func fullReduce(H [][]big.Float, y []big.Float, l *ledger, n int, prec uint) error {
	for i := 1; i < n; i++ {
		for j := i - 1; j >= 0; j-- {
			if err := reduceStep(H, y, l, i, j, prec); err != nil {
				return err
			}
		}
	}
	return nil
}

// partialReduce performs the Iterator's partial re-reduction after a
// pivot swap: for i from m+1 to n-1, for j from min(i-1, m+1) down
// to 0.
func partialReduce(H [][]big.Float, y []big.Float, l *ledger, n, m int, prec uint) error {
	for i := m + 1; i < n; i++ {
		for j := min(i-1, m+1); j >= 0; j-- {
			if err := reduceStep(H, y, l, i, j, prec); err != nil {
				return err
			}
		}
	}
	return nil
}
