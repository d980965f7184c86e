package profile

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/tabulens/tabulens/internal/dataset"
	"github.com/tabulens/tabulens/pkg/logger"
)

// topValueLimit caps the frequency table kept for non-numeric columns.
const topValueLimit = 10

// Analyzer computes a Profile from a loaded dataset. Analysis is pure: the
// same dataset always yields the same profile.
type Analyzer struct {
	threshold float64
	log       *logger.Logger
}

// NewAnalyzer creates an Analyzer. threshold is the |r| above which a
// correlation pair is reported.
func NewAnalyzer(threshold float64, log *logger.Logger) *Analyzer {
	return &Analyzer{
		threshold: threshold,
		log:       log,
	}
}

// Analyze profiles every column, computes pairwise correlations, and builds
// the key findings. The dataset must have at least one data row and no column
// may be entirely missing.
func (a *Analyzer) Analyze(ds *dataset.Dataset) (*Profile, error) {
	if ds == nil || ds.NumCols() == 0 {
		return nil, &AnalysisError{Reason: "no columns to analyze"}
	}
	rows := ds.NumRows()
	if rows == 0 {
		return nil, &AnalysisError{Reason: "no data rows to analyze"}
	}

	a.log.WithFields(map[string]interface{}{
		"file":    ds.SourceName,
		"rows":    rows,
		"columns": ds.NumCols(),
	}).Debug("analyzing dataset")

	columns := make([]ColumnProfile, 0, len(ds.Columns))
	var primaryKeys []string

	for i := range ds.Columns {
		col := &ds.Columns[i]
		missing := col.Missing()
		if missing == rows {
			return nil, &AnalysisError{Reason: fmt.Sprintf("column %q has no values", col.Name)}
		}

		cp := ColumnProfile{
			Name:       col.Name,
			Kind:       col.Kind,
			Missing:    missing,
			MissingPct: float64(missing) / float64(rows) * 100,
			Distinct:   col.Distinct(),
		}
		cp.PrimaryKey = cp.Distinct == rows && missing == 0
		if cp.PrimaryKey {
			primaryKeys = append(primaryKeys, cp.Name)
		}

		if col.Kind == dataset.KindNumeric {
			cp.Numeric = numericStats(col)
		} else {
			cp.TopValues = topValues(col)
		}

		columns = append(columns, cp)
	}

	p := &Profile{
		Overview:     buildOverview(ds, columns),
		Columns:      columns,
		PrimaryKeys:  primaryKeys,
		Correlations: computeCorrelations(ds, a.threshold),
	}
	p.KeyFindings = buildKeyFindings(p)

	a.log.WithFields(map[string]interface{}{
		"file":         ds.SourceName,
		"primary_keys": len(p.PrimaryKeys),
		"findings":     len(p.KeyFindings),
	}).Debug("analysis complete")

	return p, nil
}

// numericStats computes the numeric block for one column.
func numericStats(col *dataset.Column) *NumericStats {
	nums := col.Numbers()
	if len(nums) == 0 {
		return nil
	}

	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	skew := Skewness(nums)
	return &NumericStats{
		Count:        len(nums),
		Mean:         Mean(nums),
		Std:          StdDev(nums),
		Min:          sorted[0],
		Max:          sorted[len(sorted)-1],
		Q1:           Percentile(sorted, 25),
		Median:       Percentile(sorted, 50),
		Q3:           Percentile(sorted, 75),
		OutlierCount: CountOutliers(nums),
		Trend:        classifyTrend(nums),
		Shape:        classifyShape(skew),
		Skewness:     skew,
	}
}

// topValues builds the frequency table of a non-numeric column, highest count
// first, ties broken by value for stable output.
func topValues(col *dataset.Column) []ValueCount {
	counts := make(map[string]int)
	for _, v := range col.NonMissing() {
		counts[v]++
	}

	values := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		values = append(values, ValueCount{Value: v, Count: c})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})

	if len(values) > topValueLimit {
		values = values[:topValueLimit]
	}
	return values
}

// buildOverview summarizes the file-level statistics.
func buildOverview(ds *dataset.Dataset, columns []ColumnProfile) Overview {
	ov := Overview{
		FileName:      ds.SourceName,
		SizeBytes:     ds.SizeBytes,
		SizeHuman:     humanize.Bytes(uint64(ds.SizeBytes)),
		Rows:          ds.NumRows(),
		Cols:          ds.NumCols(),
		MissingCells:  ds.MissingCells(),
		DuplicateRows: ds.DuplicateRows(),
	}

	for _, cp := range columns {
		switch cp.Kind {
		case dataset.KindNumeric:
			ov.NumericCols++
		case dataset.KindDatetime:
			ov.DatetimeCols++
		default:
			ov.CategoricalCols++
		}
	}
	return ov
}
