package pslq

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFullReduceMaintainsLowerTrapezoidal(t *testing.T) {
	x := floats(1.41421356237, 2.71828182846, 3.14159265359)
	sumSquares, err := checkInputs(x, testPrec)
	require.NoError(t, err)
	y, H, err := buildHY(x, sumSquares, testPrec, 2)
	require.NoError(t, err)

	n := len(x)
	l := newLedger(n, int(testPrec)*4)
	require.NoError(t, fullReduce(H, y, l, n, testPrec))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n-1; j++ {
			require.Equal(t, 0, H[i][j].Sign())
		}
	}

	// Hermite condition: |H[i][j]| <= 1/2 |H[j][j]| for j < i.
	half := new(big.Float).SetPrec(testPrec).SetFloat64(0.5 + 1e-6) // small slack for rounding
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			lhs := new(big.Float).SetPrec(testPrec).Abs(&H[i][j])
			rhs := new(big.Float).SetPrec(testPrec).Abs(&H[j][j])
			rhs.Mul(rhs, half)
			require.True(t, lhs.Cmp(rhs) <= 0, "H[%d][%d]=%v exceeds half of H[%d][%d]=%v", i, j, &H[i][j], j, j, &H[j][j])
		}
	}
}
