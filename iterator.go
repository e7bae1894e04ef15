package pslq

import "math/big"

// selectPivot finds m in {0, ..., n-2} maximising gamma^(m+1)*|H[m][m]|,
// breaking ties by lowest index. m = n-1 is impossible by construction since i only ranges to
// n-2 here (H's diagonal has n-1 entries, indices 0..n-2).
func selectPivot(H [][]big.Float, gamma *big.Float, n int, prec uint) int {
	m := -1
	best := new(big.Float).SetPrec(prec).SetInt64(-1)
	gammaPower := new(big.Float).SetPrec(prec).Set(gamma)
	for i := 0; i < n-1; i++ {
		absH := new(big.Float).SetPrec(prec).Abs(&H[i][i])
		score := new(big.Float).SetPrec(prec).Mul(gammaPower, absH)
		if score.Cmp(best) > 0 {
			m = i
			best = score
		}
		gammaPower.Mul(gammaPower, gamma)
	}
	return m
}

// swapPivot exchanges y[m]/y[m+1], rows m/m+1 of H, and the
// corresponding ledger rows/columns.
func swapPivot(H [][]big.Float, y []big.Float, l *ledger, m int) {
	y[m], y[m+1] = y[m+1], y[m]
	H[m], H[m+1] = H[m+1], H[m]
	l.swapRows(m)
}

// removeCorner applies a 2x2 Givens-style rotation to columns m, m+1
// of H from row m to n-1, erasing the corner
// entry H[m][m+1] without changing y.H or ||H||_F. Only called when
// m <= n-3 (an n-2 pivot has no corner to remove).
func removeCorner(H [][]big.Float, m, n int, prec uint) error {
	var sumSq big.Float
	sumSq.SetPrec(prec)
	var sq big.Float
	sq.SetPrec(prec).Mul(&H[m][m], &H[m][m])
	sumSq.Add(&sumSq, &sq)
	sq.Mul(&H[m][m+1], &H[m][m+1])
	sumSq.Add(&sumSq, &sq)

	t0 := new(big.Float).SetPrec(prec)
	sqrtBig(&sumSq, t0)
	if t0.Sign() == 0 {
		return ErrInternalInvariantViolated
	}
	t1 := new(big.Float).SetPrec(prec).Quo(&H[m][m], t0)
	t2 := new(big.Float).SetPrec(prec).Quo(&H[m][m+1], t0)

	for i := m; i < n; i++ {
		t3 := new(big.Float).SetPrec(prec).Set(&H[i][m])
		t4 := new(big.Float).SetPrec(prec).Set(&H[i][m+1])

		var a, b big.Float
		a.SetPrec(prec).Mul(t1, t3)
		b.SetPrec(prec).Mul(t2, t4)
		H[i][m].Add(&a, &b)

		a.Mul(t2, t3)
		b.Mul(t1, t4)
		H[i][m+1].Sub(&b, &a)
	}
	return nil
}

// runRound executes one complete PSLQ round: pivot
// selection, swap, corner removal, partial re-reduction.
func runRound(H [][]big.Float, y []big.Float, l *ledger, gamma *big.Float, n int, prec uint) error {
	m := selectPivot(H, gamma, n, prec)
	if m < 0 || m > n-2 {
		return ErrInternalInvariantViolated
	}
	swapPivot(H, y, l, m)
	if m <= n-3 {
		if err := removeCorner(H, m, n, prec); err != nil {
			return err
		}
	}
	return partialReduce(H, y, l, n, m, prec)
}
