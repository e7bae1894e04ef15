// Package diagnostics renders the per-round convergence data the core
// returns in Result.History, without the core itself knowing anything
// about charting.
package diagnostics

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Sample is one round's convergence snapshot, mirroring pslq.Round
// without importing the core package (the CLI converts between them).
type Sample struct {
	Iteration int
	NormBound float64
	BestError float64
}

// History is the ordered sequence of per-round samples a search produced.
type History []Sample

// NewHistory converts the core's raw (normBound, bestError) big.Float
// pairs into a renderable History, one Sample per round.
func NewHistory(normBounds, bestErrors []*big.Float) History {
	h := make(History, len(normBounds))
	for i := range normBounds {
		nb, _ := normBounds[i].Float64()
		be := 0.0
		if i < len(bestErrors) {
			be, _ = bestErrors[i].Float64()
		}
		h[i] = Sample{Iteration: i, NormBound: nb, BestError: be}
	}
	return h
}

// Render writes the history's norm-bound and best-error series as an
// HTML line chart to w, log10-scaled on the vertical axis since both
// quantities span many orders of magnitude over a run.
func (h History) Render(w io.Writer) error {
	if len(h) == 0 {
		return fmt.Errorf("diagnostics: cannot render an empty history")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "PSLQ convergence",
			Subtitle: "log10(norm bound) and log10(best |y_i|) per round",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "iteration",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "log10(value)",
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "inside",
			Start: 0,
			End:   100,
		}),
	)

	xs := make([]string, len(h))
	normItems := make([]opts.LineData, len(h))
	errItems := make([]opts.LineData, len(h))
	for i, s := range h {
		xs[i] = fmt.Sprintf("%d", s.Iteration)
		normItems[i] = opts.LineData{Value: log10Safe(s.NormBound)}
		errItems[i] = opts.LineData{Value: log10Safe(s.BestError)}
	}

	line.SetXAxis(xs).
		AddSeries("norm bound", normItems).
		AddSeries("best |y_i|", errItems)

	return line.Render(w)
}

// Plot renders the history to an HTML file at path.
func (h History) Plot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("diagnostics: creating %s: %w", path, err)
	}
	defer f.Close()
	return h.Render(f)
}

// log10Safe maps non-positive values to a floor rather than -Inf, since
// a perfectly-converged best error can legitimately be zero.
func log10Safe(v float64) float64 {
	if v <= 0 {
		return -320
	}
	return math.Log10(v)
}
