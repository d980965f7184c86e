package profile

import (
	"math"

	"github.com/tabulens/tabulens/internal/dataset"
)

// computeCorrelations builds the Pearson matrix over numeric columns and
// collects the pairs whose |r| clears the threshold. Returns nil when fewer
// than two numeric columns exist.
func computeCorrelations(ds *dataset.Dataset, threshold float64) *CorrelationResult {
	var names []string
	var cols []*dataset.Column
	for i := range ds.Columns {
		if ds.Columns[i].Kind == dataset.KindNumeric {
			names = append(names, ds.Columns[i].Name)
			cols = append(cols, &ds.Columns[i])
		}
	}
	if len(cols) < 2 {
		return nil
	}

	n := len(cols)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}

	var findings []Finding
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pairwisePearson(cols[i], cols[j])
			matrix[i][j] = r
			matrix[j][i] = r
			if math.Abs(r) > threshold {
				findings = append(findings, Finding{Col1: names[i], Col2: names[j], R: r})
			}
		}
	}

	return &CorrelationResult{
		Columns:  names,
		Matrix:   matrix,
		Findings: findings,
	}
}

// pairwisePearson correlates two columns over the rows where both cells hold
// a parseable number.
func pairwisePearson(a, b *dataset.Column) float64 {
	n := len(a.Values)
	if len(b.Values) < n {
		n = len(b.Values)
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for r := 0; r < n; r++ {
		x, ok := numericCell(a.Values[r])
		if !ok {
			continue
		}
		y, ok := numericCell(b.Values[r])
		if !ok {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	return Pearson(xs, ys)
}

// numericCell parses one cell, treating missing tokens as absent.
func numericCell(s string) (float64, bool) {
	if dataset.IsMissing(s) {
		return 0, false
	}
	return dataset.ParseNumber(s)
}
