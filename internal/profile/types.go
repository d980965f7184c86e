// Package profile turns a parsed dataset into the statistics, findings, and
// text insights that make up a profiling run.
package profile

import "github.com/tabulens/tabulens/internal/dataset"

// Trend describes the direction of a numeric column over row order.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Shape describes the skew of a numeric column's distribution.
type Shape string

const (
	ShapeNormal      Shape = "normal"
	ShapeRightSkewed Shape = "right-skewed"
	ShapeLeftSkewed  Shape = "left-skewed"
)

// Overview summarizes the file as a whole.
type Overview struct {
	FileName      string
	SizeBytes     int64
	SizeHuman     string
	Rows          int
	Cols          int
	MissingCells  int
	DuplicateRows int

	NumericCols     int
	DatetimeCols    int
	CategoricalCols int
}

// NumericStats holds the statistics computed for numeric columns only.
type NumericStats struct {
	Count        int // parsed, non-missing values
	Mean         float64
	Std          float64
	Min          float64
	Max          float64
	Q1           float64
	Median       float64
	Q3           float64
	OutlierCount int

	Trend    Trend
	Shape    Shape
	Skewness float64
}

// ValueCount is one entry of a categorical column's frequency table.
type ValueCount struct {
	Value string
	Count int
}

// ColumnProfile holds everything computed for a single column.
type ColumnProfile struct {
	Name       string
	Kind       dataset.Kind
	Missing    int
	MissingPct float64
	Distinct   int
	PrimaryKey bool

	Numeric   *NumericStats // nil unless the column is numeric
	TopValues []ValueCount  // populated for non-numeric columns
}

// Finding is one strong pairwise correlation.
type Finding struct {
	Col1 string
	Col2 string
	R    float64
}

// Positive reports whether the correlation is direct rather than inverse.
func (f Finding) Positive() bool {
	return f.R > 0
}

// CorrelationResult holds the full matrix over numeric columns plus the pairs
// that cleared the strength threshold.
type CorrelationResult struct {
	Columns  []string
	Matrix   [][]float64
	Findings []Finding
}

// Profile is the complete outcome of analyzing one dataset.
type Profile struct {
	Overview     Overview
	Columns      []ColumnProfile
	PrimaryKeys  []string
	Correlations *CorrelationResult // nil when fewer than two numeric columns
	KeyFindings  []string
}

// Column returns the profile for a named column, or nil.
func (p *Profile) Column(name string) *ColumnProfile {
	for i := range p.Columns {
		if p.Columns[i].Name == name {
			return &p.Columns[i]
		}
	}
	return nil
}
