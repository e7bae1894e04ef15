package pslq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectPivotTieBreakLowestIndex(t *testing.T) {
	n := 4
	H := newMatrix(n, n-1, testPrec)
	// gamma^1*|H[0][0]| and gamma^2*|H[1][1]| are both gamma^2, a tie
	// for the maximum; gamma^3*|H[2][2]| is far smaller. The tie must go
	// to the lower index.
	gamma := DefaultGamma(testPrec)
	H[0][0].Set(gamma)
	H[1][1].SetInt64(1)
	H[2][2].SetFloat64(0.1)
	m := selectPivot(H, gamma, n, testPrec)
	require.Equal(t, 0, m)
}

func TestRunRoundPreservesTrapezoidalShape(t *testing.T) {
	x := floats(1.41421356237, 2.71828182846, 3.14159265359, 5.19615242271)
	sumSquares, err := checkInputs(x, testPrec)
	require.NoError(t, err)
	y, H, err := buildHY(x, sumSquares, testPrec, 2)
	require.NoError(t, err)
	n := len(x)
	l := newLedger(n, int(testPrec)*4)
	require.NoError(t, fullReduce(H, y, l, n, testPrec))

	gamma := DefaultGamma(testPrec)
	require.NoError(t, runRound(H, y, l, gamma, n, testPrec))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n-1; j++ {
			require.Equal(t, 0, H[i][j].Sign())
		}
	}
	requireIdentityProduct(t, l)
}
