package pslq

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHYInvariants(t *testing.T) {
	x := floats(math.Log(2), math.E, math.Pi, 10.978081862745977)
	sumSquares, err := checkInputs(x, testPrec)
	require.NoError(t, err)

	y, H, err := buildHY(x, sumSquares, testPrec, 2)
	require.NoError(t, err)

	n := len(x)
	require.Len(t, y, n)
	require.Len(t, H, n)
	require.Len(t, H[0], n-1)

	// Lower trapezoidal: H[i][j] == 0 for j > i.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n-1; j++ {
			require.Equal(t, 0, H[i][j].Sign(), "H[%d][%d] should be zero", i, j)
		}
	}

	// ||y||_2^2 ~ 1
	var normSq big.Float
	normSq.SetPrec(testPrec)
	for i := range y {
		var sq big.Float
		sq.SetPrec(testPrec).Mul(&y[i], &y[i])
		normSq.Add(&normSq, &sq)
	}
	got, _ := normSq.Float64()
	require.InDelta(t, 1.0, got, 1e-10)
}

func TestBuildHYRejectsCloseValues(t *testing.T) {
	x := make([]big.Float, 2)
	x[0].SetPrec(testPrec).SetInt64(1)
	one := new(big.Float).SetPrec(testPrec).SetInt64(1)
	// One ULP of 1.0 at testPrec bits is 2^(1-testPrec).
	ulp := new(big.Float).SetPrec(testPrec).SetMantExp(one, 1-int(testPrec))
	x[1].SetPrec(testPrec).Add(&x[0], ulp)

	sumSquares, err := checkInputs(x, testPrec)
	require.NoError(t, err)

	_, _, err = buildHY(x, sumSquares, testPrec, 2)
	require.Error(t, err)
	var pe *PrecisionInsufficientError
	require.ErrorAs(t, err, &pe)
}
