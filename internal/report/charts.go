package report

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tabulens/tabulens/internal/profile"
)

// barChartLimit is the distinct-value count above which a categorical column
// gets no chart; the bars would be unreadable.
const barChartLimit = 20

// histogramPNG draws the value distribution of a numeric column. Columns
// without spread (fewer than two values, or min == max) yield no chart.
func histogramPNG(name string, values []float64, bins int) ([]byte, error) {
	if len(values) < 2 {
		return nil, nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution of %s", name)
	p.X.Label.Text = name
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, fmt.Errorf("histogram for %s: %w", name, err)
	}
	p.Add(h)

	return plotPNG(p, 8*vg.Inch, 4*vg.Inch)
}

// barChartPNG draws the frequency table of a categorical column.
func barChartPNG(name string, values []profile.ValueCount) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}

	counts := make(plotter.Values, len(values))
	labels := make([]string, len(values))
	for i, vc := range values {
		counts[i] = float64(vc.Count)
		labels[i] = vc.Value
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Values in %s", len(values), name)
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(counts, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("bar chart for %s: %w", name, err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	return plotPNG(p, 8*vg.Inch, 4*vg.Inch)
}

// heatmapPNG draws the full correlation matrix on a diverging palette
// centered at zero.
func heatmapPNG(corr *profile.CorrelationResult) ([]byte, error) {
	if corr == nil || len(corr.Columns) < 2 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"

	h := plotter.NewHeatMap(corrGrid{matrix: corr.Matrix}, moreland.SmoothBlueRed().Palette(255))
	h.Min = -1
	h.Max = 1
	p.Add(h)
	p.NominalX(corr.Columns...)
	p.NominalY(corr.Columns...)

	return plotPNG(p, 10*vg.Inch, 8*vg.Inch)
}

// plotPNG renders a plot to PNG bytes.
func plotPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart: %w", err)
	}
	return buf.Bytes(), nil
}

// corrGrid adapts a correlation matrix to the heat map grid interface.
type corrGrid struct {
	matrix [][]float64
}

func (g corrGrid) Dims() (c, r int) {
	return len(g.matrix), len(g.matrix)
}

func (g corrGrid) Z(c, r int) float64 {
	return g.matrix[r][c]
}

func (g corrGrid) X(c int) float64 {
	return float64(c)
}

func (g corrGrid) Y(r int) float64 {
	return float64(r)
}
