package profile

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// buildKeyFindings renders the profile into the ordered, human-readable
// findings shown at the top of the report.
func buildKeyFindings(p *Profile) []string {
	var findings []string

	// Data quality
	totalCells := p.Overview.Rows * p.Overview.Cols
	completeness := 100.0
	if totalCells > 0 {
		completeness = (1 - float64(p.Overview.MissingCells)/float64(totalCells)) * 100
	}
	affected := 0
	for _, cp := range p.Columns {
		if cp.Missing > 0 {
			affected++
		}
	}
	findings = append(findings,
		fmt.Sprintf("Data Quality Assessment:\nOverall data completeness is %.1f%%, with %s missing values across %d columns.",
			completeness, humanize.Comma(int64(p.Overview.MissingCells)), affected),
		fmt.Sprintf("Dataset Dimensions and Structure:\nThe dataset contains %s records with %d attributes, providing a comprehensive view of the data.",
			humanize.Comma(int64(p.Overview.Rows)), p.Overview.Cols),
	)

	// Primary keys
	if len(p.PrimaryKeys) > 0 {
		described := make([]string, 0, len(p.PrimaryKeys))
		for _, name := range p.PrimaryKeys {
			if cp := p.Column(name); cp != nil {
				described = append(described, fmt.Sprintf("%s (%s unique values)", name, humanize.Comma(int64(cp.Distinct))))
			}
		}
		findings = append(findings,
			fmt.Sprintf("Primary Key Analysis:\nIdentified %d potential primary key(s): %s. These columns have unique values for each record and can be used as reliable identifiers.",
				len(p.PrimaryKeys), strings.Join(described, ", ")))
	}

	// Strong correlations
	if p.Correlations != nil {
		for _, f := range p.Correlations.Findings {
			findings = append(findings, correlationFinding(f))
		}
	}

	// Trends
	for _, cp := range p.Columns {
		if cp.Numeric == nil || cp.Numeric.Trend == TrendStable {
			continue
		}
		findings = append(findings,
			fmt.Sprintf("Trend Analysis for %s:\nShows a %s trend with %s distribution. Mean value is %.2f with a standard deviation of %.2f.",
				cp.Name, cp.Numeric.Trend, cp.Numeric.Shape, cp.Numeric.Mean, cp.Numeric.Std))
	}

	// Type distribution
	numeric := p.Overview.NumericCols
	categorical := p.Overview.CategoricalCols + p.Overview.DatetimeCols
	balance := "balanced"
	if abs := numeric - categorical; abs > 2 || abs < -2 {
		if numeric > categorical {
			balance = "predominantly numeric"
		} else {
			balance = "predominantly categorical"
		}
	}
	findings = append(findings,
		fmt.Sprintf("Data Type Distribution:\nThe dataset contains %d numeric columns and %d categorical columns, suggesting a %s dataset.",
			numeric, categorical, balance))

	// Outliers
	var outlierInfo []string
	for _, cp := range p.Columns {
		if cp.Numeric != nil && cp.Numeric.OutlierCount > 0 {
			outlierInfo = append(outlierInfo, fmt.Sprintf("%s (%d outliers)", cp.Name, cp.Numeric.OutlierCount))
		}
	}
	if len(outlierInfo) > 0 {
		findings = append(findings,
			fmt.Sprintf("Outlier Detection:\nFound potential outliers in the following numeric columns: %s. These may require further investigation or special handling.",
				strings.Join(outlierInfo, ", ")))
	}

	return findings
}

// correlationFinding words one strong pair, naming the direction both columns
// move in.
func correlationFinding(f Finding) string {
	direction := "positive"
	firstVerb := "increases"
	secondVerb := "increase"
	if !f.Positive() {
		direction = "negative"
		firstVerb = "increases"
		secondVerb = "decrease"
	}
	return fmt.Sprintf("Strong %s correlation (%.2f) between %s and %s:\nThis indicates that as %s %s, %s tends to %s proportionally.",
		direction, math.Abs(f.R), f.Col1, f.Col2, f.Col1, firstVerb, f.Col2, secondVerb)
}
