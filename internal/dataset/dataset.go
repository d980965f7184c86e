// Package dataset loads uploaded CSV files into an in-memory table and
// classifies each column by inspecting its values.
package dataset

import "strings"

// Kind classifies a column by the values it holds.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindDatetime    Kind = "datetime"
	KindCategorical Kind = "categorical"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Column is a single named column with its raw cell values in row order.
type Column struct {
	Name   string
	Kind   Kind
	Values []string
}

// Missing counts cells considered missing (empty or an NA token).
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

// NonMissing returns the raw values that are not missing, preserving order.
func (c *Column) NonMissing() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Numbers returns the numeric values of the column in row order, skipping
// missing and unparseable cells.
func (c *Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if IsMissing(v) {
			continue
		}
		if f, ok := ParseNumber(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// Distinct counts unique non-missing raw values.
func (c *Column) Distinct() int {
	seen := make(map[string]struct{}, len(c.Values))
	for _, v := range c.Values {
		if IsMissing(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Dataset is a parsed CSV held fully in memory. It lives for the duration of
// one profiling run and is discarded afterwards.
type Dataset struct {
	SourceName string // original upload filename
	SizeBytes  int64
	Encoding   string // encoding the file decoded with
	Delimiter  rune

	Headers []string
	Rows    [][]string // row-major data cells, header excluded
	Columns []Column
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int {
	return len(d.Headers)
}

// MissingCells counts missing cells across the whole table.
func (d *Dataset) MissingCells() int {
	n := 0
	for i := range d.Columns {
		n += d.Columns[i].Missing()
	}
	return n
}

// DuplicateRows counts rows that are exact repeats of an earlier row.
func (d *Dataset) DuplicateRows() int {
	seen := make(map[string]struct{}, len(d.Rows))
	dups := 0
	for _, row := range d.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// buildColumns transposes rows into typed columns.
func (d *Dataset) buildColumns() {
	d.Columns = make([]Column, len(d.Headers))
	for i, name := range d.Headers {
		values := make([]string, len(d.Rows))
		for r, row := range d.Rows {
			if i < len(row) {
				values[r] = row[i]
			}
		}
		d.Columns[i] = Column{
			Name:   name,
			Kind:   inferKind(values),
			Values: values,
		}
	}
}
