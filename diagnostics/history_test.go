package diagnostics

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func bigFloats(vals ...float64) []*big.Float {
	out := make([]*big.Float, len(vals))
	for i, v := range vals {
		out[i] = big.NewFloat(v)
	}
	return out
}

func TestNewHistoryOrdersByIteration(t *testing.T) {
	h := NewHistory(bigFloats(100, 10, 1), bigFloats(0.5, 0.1, 0.001))
	require.Len(t, h, 3)
	for i, s := range h {
		require.Equal(t, i, s.Iteration)
	}
	require.Equal(t, 100.0, h[0].NormBound)
	require.Equal(t, 0.001, h[2].BestError)
}

func TestNewHistoryTolerateMissingBestErrors(t *testing.T) {
	h := NewHistory(bigFloats(100, 10), nil)
	require.Len(t, h, 2)
	require.Equal(t, 0.0, h[0].BestError)
}

func TestPlotWritesFile(t *testing.T) {
	h := NewHistory(bigFloats(100, 10, 1), bigFloats(0.5, 0.1, 0.001))
	path := filepath.Join(t.TempDir(), "convergence.html")
	require.NoError(t, h.Plot(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "PSLQ convergence")
}

func TestPlotRejectsEmptyHistory(t *testing.T) {
	var h History
	err := h.Plot(filepath.Join(t.TempDir(), "empty.html"))
	require.Error(t, err)
}

func TestRenderRejectsEmptyHistory(t *testing.T) {
	var h History
	err := h.Render(new(bytes.Buffer))
	require.Error(t, err)
}

func TestLog10SafeFloorsNonPositive(t *testing.T) {
	require.Equal(t, -320.0, log10Safe(0))
	require.Equal(t, -320.0, log10Safe(-1))
	require.Equal(t, 1.0, log10Safe(10))
}
