// Maths utilities

package pslq

import (
	"math"
	"math/big"
)

type num interface {
	~int | ~int64 | ~float64
}

func max[T num](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

func min[T num](a, b T) T {
	if a <= b {
		return a
	}
	return b
}

// newMatrix makes a new matrix with that many rows and cols at the
// given precision. Rows need not equal cols: H is n x (n-1).
func newMatrix(rows, cols int, prec uint) [][]big.Float {
	U := make([]big.Float, rows*cols)
	M := make([][]big.Float, rows)
	for i := 0; i < rows; i++ {
		M[i] = U[cols*i : cols*(i+1) : cols*(i+1)]
		for j := range M[i] {
			M[i][j].SetPrec(prec)
		}
	}
	return M
}

// newVector makes a new vector with n items at the given precision.
func newVector(n int, prec uint) []big.Float {
	V := make([]big.Float, n)
	for i := range V {
		V[i].SetPrec(prec)
	}
	return V
}

// newBigIntMatrix makes a new rows x cols matrix of big.Int, all zero.
func newBigIntMatrix(rows, cols int) [][]big.Int {
	U := make([]big.Int, rows*cols)
	M := make([][]big.Int, rows)
	for i := 0; i < rows; i++ {
		M[i] = U[cols*i : cols*(i+1) : cols*(i+1)]
	}
	return M
}

// identityInt returns a new n x n identity matrix of big.Int.
func identityInt(n int) [][]big.Int {
	M := newBigIntMatrix(n, n)
	for i := 0; i < n; i++ {
		M[i][i].SetInt64(1)
	}
	return M
}

// epsilon returns the relative machine precision of a big.Float with
// the given mantissa precision: 2^-prec.
func epsilon(prec uint) *big.Float {
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	return new(big.Float).SetPrec(prec).SetMantExp(one, -int(prec))
}

// sqrtBig computes the square root of n using Newton's method,
// starting from a float64 estimate and refining to the full precision
// of the result. n and x must be distinct.
func sqrtBig(n, x *big.Float) {
	if n == x {
		panic("sqrtBig: need distinct input and output")
	}
	if n.Sign() == 0 {
		x.Set(n)
		return
	} else if n.Sign() < 0 {
		panic("sqrtBig: sqrt of negative number")
	}
	prec := n.Prec()

	nFloat64, _ := n.Float64()
	x.SetPrec(prec).SetFloat64(math.Sqrt(nFloat64))

	half := new(big.Float).SetPrec(prec).SetFloat64(0.5)
	var t big.Float
	for {
		t.Quo(n, x)
		t.Add(x, &t)
		t.Mul(half, &t)
		if x.Cmp(&t) == 0 {
			break
		}
		x.Set(&t)
	}
}

// nearestInt sets res to round-half-away-from-zero(x). This is the
// single rounding routine used throughout: the H-side real t and the
// integer-side t handed to the ledger must be identical, so every
// reduction step calls this exactly once and reuses both
// representations of the result.
func nearestInt(x *big.Float, res *big.Int) {
	prec := x.Prec()
	half := new(big.Float).SetPrec(prec).SetFloat64(0.5)
	tmp := new(big.Float).SetPrec(prec)
	if x.Sign() >= 0 {
		tmp.Add(x, half)
	} else {
		tmp.Sub(x, half)
	}
	tmp.Int(res)
}

// ulpDistance estimates the distance between a and b in ULPs, as the
// ratio of |a-b| to one precision-prec ULP of the smaller-magnitude
// operand (truncated toward zero). Used only to reject
// near-duplicate inputs that would be indistinguishable at this
// precision.
func ulpDistance(a, b *big.Float, prec uint) int64 {
	if a.Cmp(b) == 0 {
		return 0
	}
	diff := new(big.Float).SetPrec(prec).Sub(a, b)
	diff.Abs(diff)
	absA := new(big.Float).SetPrec(prec).Abs(a)
	absB := new(big.Float).SetPrec(prec).Abs(b)
	ref := a
	if absA.Cmp(absB) > 0 {
		ref = b
	}
	if ref.Sign() == 0 {
		return math.MaxInt64
	}
	// ref = mant * 2^exp with 0.5 <= |mant| < 1, so its last mantissa
	// bit at precision prec weighs 2^(exp-prec).
	ulp := new(big.Float).SetPrec(prec).SetMantExp(big.NewFloat(1), ref.MantExp(nil)-int(prec))
	ratio := new(big.Float).SetPrec(prec).Quo(diff, ulp)
	f, _ := ratio.Float64()
	if f > float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(f)
}
