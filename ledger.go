package pslq

import "math/big"

// ledger maintains the two n x n integer matrices A and B with the
// invariant A*B = I. Every method updates both matrices
// in lockstep so the invariant is never observably broken between
// calls. overflowBits bounds how large any entry of A may grow before
// the ledger reports IntegerOverflow (entries of B are not checked):
// beyond that width the bookkeeping
// integers have outrun what the working precision can certify, so
// trusting them further would be meaningless.
type ledger struct {
	A, B         [][]big.Int
	n            int
	overflowBits int
}

func newLedger(n int, overflowBits int) *ledger {
	return &ledger{
		A:            identityInt(n),
		B:            identityInt(n),
		n:            n,
		overflowBits: overflowBits,
	}
}

// reduceRow applies A[i,:] -= t*A[j,:]; B[:,j] += t*B[:,i], the integer
// side of the Hermite reduction update. t must be the exact same
// integer used to update H and y for this step.
func (l *ledger) reduceRow(i, j int, t *big.Int) error {
	if t.Sign() == 0 {
		return nil
	}
	var tmp big.Int
	for k := 0; k < l.n; k++ {
		tmp.Mul(t, &l.A[j][k])
		l.A[i][k].Sub(&l.A[i][k], &tmp)
		tmp.Mul(t, &l.B[k][i])
		l.B[k][j].Add(&l.B[k][j], &tmp)
	}
	return l.checkOverflow()
}

// swapRows exchanges rows m and m+1 of A, and columns m and m+1 of B,
// matching the Iterator's row-exchange step.
func (l *ledger) swapRows(m int) {
	l.A[m], l.A[m+1] = l.A[m+1], l.A[m]
	for k := 0; k < l.n; k++ {
		l.B[k][m], l.B[k][m+1] = l.B[k][m+1], l.B[k][m]
	}
}

// column returns a copy of column j of B -- a candidate integer
// relation.
func (l *ledger) column(j int) []big.Int {
	col := make([]big.Int, l.n)
	for i := 0; i < l.n; i++ {
		col[i].Set(&l.B[i][j])
	}
	return col
}

func (l *ledger) checkOverflow() error {
	maxBits := 0
	for i := 0; i < l.n; i++ {
		for j := 0; j < l.n; j++ {
			if b := l.A[i][j].BitLen(); b > maxBits {
				maxBits = b
			}
		}
	}
	if maxBits > l.overflowBits {
		return &IntegerOverflowError{BitLen: maxBits, Target: l.overflowBits}
	}
	return nil
}
