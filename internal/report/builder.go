// Package report assembles profiling results into an ordered report model
// and renders it as a multi-page PDF with embedded charts.
package report

import (
	"fmt"
	"time"

	"github.com/tabulens/tabulens/internal/dataset"
	"github.com/tabulens/tabulens/internal/profile"
	"github.com/tabulens/tabulens/pkg/logger"
)

// Section is one block of the report: a title, text lines, and an optional
// chart image. Sections appear in a fixed order and are immutable once built.
type Section struct {
	Title string
	Lines []string
	Chart []byte // PNG, may be nil
}

// ColumnPage holds the per-column detail rendered after the summary
// sections.
type ColumnPage struct {
	Name       string
	PrimaryKey bool
	Lines      []string
	TrendLines []string
	TopValues  []string
	Chart      []byte // PNG, may be nil
}

// Report is the complete document model handed to the PDF layout. It is
// built once per profiling run and never mutated afterwards.
type Report struct {
	Title       string
	GeneratedAt time.Time
	KeyFindings []string
	Sections    []Section
	Overview    []string
	Columns     []ColumnPage
}

// Renderer builds and renders reports.
type Renderer struct {
	bins int
	log  *logger.Logger
}

// NewRenderer creates a Renderer. bins controls histogram resolution.
func NewRenderer(bins int, log *logger.Logger) *Renderer {
	return &Renderer{
		bins: bins,
		log:  log,
	}
}

// Render builds the report model for a profiled dataset and lays it out as a
// PDF, returned as bytes.
func (r *Renderer) Render(ds *dataset.Dataset, p *profile.Profile) ([]byte, error) {
	if p == nil || len(p.Columns) == 0 {
		return nil, &RenderError{Reason: "no analysis results to render"}
	}

	rep, err := r.build(ds, p)
	if err != nil {
		return nil, err
	}

	data, err := layoutPDF(rep)
	if err != nil {
		return nil, &RenderError{Reason: "pdf layout failed", Err: err}
	}

	r.log.WithFields(map[string]interface{}{
		"file":  p.Overview.FileName,
		"bytes": len(data),
		"pages": len(rep.Sections) + len(rep.Columns) + 2,
	}).Debug("report rendered")

	return data, nil
}

// build assembles the section model and draws every chart.
func (r *Renderer) build(ds *dataset.Dataset, p *profile.Profile) (*Report, error) {
	rep := &Report{
		Title:       "CSV Profile Report",
		GeneratedAt: time.Now(),
		KeyFindings: p.KeyFindings,
		Overview:    overviewLines(p.Overview),
	}

	heatmap, err := heatmapPNG(p.Correlations)
	if err != nil {
		return nil, &RenderError{Reason: "heatmap generation failed", Err: err}
	}

	rep.Sections = []Section{
		dataQualitySection(p),
		primaryKeySection(p),
		correlationSection(p, heatmap),
		trendSection(p),
		typeDistributionSection(p),
		outlierSection(p),
	}

	for _, cp := range p.Columns {
		page, err := r.columnPage(ds, &cp)
		if err != nil {
			return nil, err
		}
		rep.Columns = append(rep.Columns, page)
	}

	return rep, nil
}

func dataQualitySection(p *profile.Profile) Section {
	totalCells := p.Overview.Rows * p.Overview.Cols
	completeness := 100.0
	if totalCells > 0 {
		completeness = (1 - float64(p.Overview.MissingCells)/float64(totalCells)) * 100
	}
	return Section{
		Title: "Data Quality",
		Lines: []string{
			fmt.Sprintf("Overall completeness: %.1f%%", completeness),
			fmt.Sprintf("Missing cells: %d", p.Overview.MissingCells),
			fmt.Sprintf("Duplicate rows: %d", p.Overview.DuplicateRows),
		},
	}
}

func primaryKeySection(p *profile.Profile) Section {
	s := Section{Title: "Primary Keys"}
	if len(p.PrimaryKeys) == 0 {
		s.Lines = []string{"No primary key candidates identified."}
		return s
	}
	for _, name := range p.PrimaryKeys {
		cp := p.Column(name)
		if cp == nil {
			continue
		}
		s.Lines = append(s.Lines, fmt.Sprintf("%s: %d distinct values, no missing values", name, cp.Distinct))
	}
	return s
}

func correlationSection(p *profile.Profile, heatmap []byte) Section {
	s := Section{Title: "Correlations", Chart: heatmap}
	if p.Correlations == nil {
		s.Lines = []string{"Insufficient data: fewer than two numeric columns."}
		return s
	}
	if len(p.Correlations.Findings) == 0 {
		s.Lines = []string{"No strong correlations found."}
		return s
	}
	for _, f := range p.Correlations.Findings {
		direction := "positive"
		if !f.Positive() {
			direction = "negative"
		}
		s.Lines = append(s.Lines, fmt.Sprintf("%s and %s: %s correlation (r = %.2f)", f.Col1, f.Col2, direction, f.R))
	}
	return s
}

func trendSection(p *profile.Profile) Section {
	s := Section{Title: "Trends"}
	for _, cp := range p.Columns {
		if cp.Numeric == nil {
			continue
		}
		s.Lines = append(s.Lines, fmt.Sprintf("%s: %s trend, %s distribution", cp.Name, cp.Numeric.Trend, cp.Numeric.Shape))
	}
	if len(s.Lines) == 0 {
		s.Lines = []string{"No numeric columns to examine."}
	}
	return s
}

func typeDistributionSection(p *profile.Profile) Section {
	return Section{
		Title: "Type Distribution",
		Lines: []string{
			fmt.Sprintf("Numeric columns: %d", p.Overview.NumericCols),
			fmt.Sprintf("Categorical columns: %d", p.Overview.CategoricalCols),
			fmt.Sprintf("Datetime columns: %d", p.Overview.DatetimeCols),
		},
	}
}

func outlierSection(p *profile.Profile) Section {
	s := Section{Title: "Outliers"}
	for _, cp := range p.Columns {
		if cp.Numeric != nil && cp.Numeric.OutlierCount > 0 {
			s.Lines = append(s.Lines, fmt.Sprintf("%s: %d values outside the IQR fences", cp.Name, cp.Numeric.OutlierCount))
		}
	}
	if len(s.Lines) == 0 {
		s.Lines = []string{"No outliers detected."}
	}
	return s
}

// overviewLines renders the file-level statistics as label: value lines.
func overviewLines(ov profile.Overview) []string {
	return []string{
		fmt.Sprintf("Filename: %s", ov.FileName),
		fmt.Sprintf("File Size: %s", ov.SizeHuman),
		fmt.Sprintf("Rows: %d", ov.Rows),
		fmt.Sprintf("Columns: %d", ov.Cols),
		fmt.Sprintf("Missing Cells: %d", ov.MissingCells),
		fmt.Sprintf("Duplicate Rows: %d", ov.DuplicateRows),
	}
}

// columnPage builds the detail page for one column, drawing its chart.
func (r *Renderer) columnPage(ds *dataset.Dataset, cp *profile.ColumnProfile) (ColumnPage, error) {
	page := ColumnPage{
		Name:       cp.Name,
		PrimaryKey: cp.PrimaryKey,
		Lines: []string{
			fmt.Sprintf("Type: %s", cp.Kind),
			fmt.Sprintf("Missing Values: %d (%.1f%%)", cp.Missing, cp.MissingPct),
			fmt.Sprintf("Unique Values: %d", cp.Distinct),
		},
	}

	if cp.Numeric != nil {
		n := cp.Numeric
		page.Lines = append(page.Lines,
			fmt.Sprintf("Mean: %.2f", n.Mean),
			fmt.Sprintf("Standard Deviation: %.2f", n.Std),
			fmt.Sprintf("Min: %g", n.Min),
			fmt.Sprintf("Max: %g", n.Max),
			fmt.Sprintf("25th Percentile: %.2f", n.Q1),
			fmt.Sprintf("Median: %.2f", n.Median),
			fmt.Sprintf("75th Percentile: %.2f", n.Q3),
		)
		page.TrendLines = []string{
			fmt.Sprintf("Trend: %s", titleCase(string(n.Trend))),
			fmt.Sprintf("Distribution: %s", titleCase(string(n.Shape))),
		}

		var values []float64
		if col := datasetColumn(ds, cp.Name); col != nil {
			values = col.Numbers()
		}
		chart, err := histogramPNG(cp.Name, values, r.bins)
		if err != nil {
			return page, &RenderError{Reason: "chart generation failed", Err: err}
		}
		page.Chart = chart
		return page, nil
	}

	for _, vc := range cp.TopValues {
		page.TopValues = append(page.TopValues, fmt.Sprintf("%s: %d", vc.Value, vc.Count))
	}
	if cp.Distinct <= barChartLimit {
		chart, err := barChartPNG(cp.Name, cp.TopValues)
		if err != nil {
			return page, &RenderError{Reason: "chart generation failed", Err: err}
		}
		page.Chart = chart
	}
	return page, nil
}

// datasetColumn finds the raw column backing a profile entry.
func datasetColumn(ds *dataset.Dataset, name string) *dataset.Column {
	if ds == nil {
		return nil
	}
	for i := range ds.Columns {
		if ds.Columns[i].Name == name {
			return &ds.Columns[i]
		}
	}
	return nil
}

// titleCase uppercases the first letter of each space- or hyphen-separated
// word, e.g. "right-skewed" becomes "Right-Skewed".
func titleCase(s string) string {
	out := []rune(s)
	up := true
	for i, r := range out {
		if up && r >= 'a' && r <= 'z' {
			out[i] = r - ('a' - 'A')
		}
		up = r == ' ' || r == '-'
	}
	return string(out)
}
