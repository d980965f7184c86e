package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnCounts(t *testing.T) {
	col := Column{
		Name:   "score",
		Kind:   KindNumeric,
		Values: []string{"10", "", "20", "NA", "10", "bad"},
	}

	assert.Equal(t, 2, col.Missing())
	assert.Equal(t, []string{"10", "20", "10", "bad"}, col.NonMissing())
	assert.Equal(t, []float64{10, 20, 10}, col.Numbers(), "unparseable cells are skipped")
	assert.Equal(t, 3, col.Distinct(), "distinct counts raw non-missing values")
}

func TestDatasetMissingCells(t *testing.T) {
	ds, err := Load(strings.NewReader("a,b\n1,\nNA,2\n3,4\n"), "gaps.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, ds.MissingCells())
	assert.Equal(t, 1, ds.Columns[0].Missing())
	assert.Equal(t, 1, ds.Columns[1].Missing())
}

func TestDatasetDuplicateRows(t *testing.T) {
	ds, err := Load(strings.NewReader("a,b\n1,2\n1,2\n3,4\n1,2\n"), "dups.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, ds.DuplicateRows(), "repeats beyond the first occurrence count")
}

func TestDatasetNoDuplicates(t *testing.T) {
	ds, err := Load(strings.NewReader("a,b\n1,2\n2,1\n"), "uniq.csv")
	require.NoError(t, err)

	assert.Equal(t, 0, ds.DuplicateRows())
}

func TestBuildColumnsRaggedRow(t *testing.T) {
	// Short rows are padded with empty cells during transpose.
	ds := &Dataset{
		Headers: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}, {"3"}},
	}
	ds.buildColumns()

	require.Len(t, ds.Columns, 2)
	assert.Equal(t, []string{"2", ""}, ds.Columns[1].Values)
	assert.Equal(t, 1, ds.Columns[1].Missing())
}
