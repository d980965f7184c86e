package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabulens/tabulens/internal/dataset"
	"github.com/tabulens/tabulens/internal/profile"
	"github.com/tabulens/tabulens/internal/report"
	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/pkg/logger"
)

func testRunner(t *testing.T) (*Runner, *storage.Store) {
	t.Helper()
	log := logger.NewNop()
	store := storage.New(storage.Dirs{
		Input:  filepath.Join(t.TempDir(), "input"),
		Output: filepath.Join(t.TempDir(), "output"),
	}, log)
	require.NoError(t, store.Ensure())

	runner := NewRunner(
		profile.NewAnalyzer(0.5, log),
		report.NewRenderer(30, log),
		store,
		log,
	)
	return runner, store
}

func writeCSV(t *testing.T, store *storage.Store, name, content string) string {
	t.Helper()
	path := filepath.Join(store.InputDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunFile(t *testing.T) {
	runner, store := testRunner(t)
	path := writeCSV(t, store, "data.csv", "a,b\n1,2\n3,4\n5,6\n")

	res, err := runner.RunFile(path, "ab12cd34", "")
	require.NoError(t, err)

	assert.Equal(t, StageRendered, res.Stage)
	assert.Equal(t, "ab12cd34", res.ID)
	assert.Equal(t, "data.csv", res.SourceName)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 2, res.Cols)
	assert.GreaterOrEqual(t, res.Duration, int64(0))

	assert.Regexp(t, regexp.MustCompile(`^data_profile_report_\d{8}_\d{4}_ab12cd34\.pdf$`), res.ReportName)
	assert.Equal(t, filepath.Join(store.OutputDir(), res.ReportName), res.ReportPath)

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRunFileSourceOverride(t *testing.T) {
	runner, store := testRunner(t)
	path := writeCSV(t, store, "ab12cd34_data.csv", "a,b\n1,2\n3,4\n5,6\n")

	res, err := runner.RunFile(path, "ab12cd34", "My Data.csv")
	require.NoError(t, err)

	assert.Equal(t, "My Data.csv", res.SourceName)
	assert.Regexp(t, regexp.MustCompile(`^My_Data_profile_report_\d{8}_\d{4}_ab12cd34\.pdf$`), res.ReportName)
}

func TestRunFileParseFailure(t *testing.T) {
	runner, store := testRunner(t)
	path := writeCSV(t, store, "empty.csv", "")

	res, err := runner.RunFile(path, "ab12cd34", "")
	require.Error(t, err)
	assert.Nil(t, res)

	var perr *PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, StageParsed, perr.Stage)

	var parseErr *dataset.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestRunFileAnalysisFailure(t *testing.T) {
	runner, store := testRunner(t)
	path := writeCSV(t, store, "headers.csv", "a,b\n")

	_, err := runner.RunFile(path, "ab12cd34", "")
	require.Error(t, err)

	var perr *PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, StageAnalyzed, perr.Stage)

	var analysisErr *profile.AnalysisError
	assert.True(t, errors.As(err, &analysisErr))
}

func TestRunFileMissingFile(t *testing.T) {
	runner, store := testRunner(t)

	_, err := runner.RunFile(filepath.Join(store.InputDir(), "nope.csv"), "ab12cd34", "")
	require.Error(t, err)

	var perr *PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, StageParsed, perr.Stage)
}

func TestStages(t *testing.T) {
	order := AllStages()
	assert.Equal(t, []Stage{StageReceived, StageParsed, StageAnalyzed, StageRendered, StageServed}, order)

	for _, s := range order {
		assert.True(t, IsValidStage(s.String()), "stage %s should be valid", s)
		assert.NotEqual(t, "unknown", s.Description())
	}
	assert.True(t, IsValidStage(StageFailed.String()))
	assert.False(t, IsValidStage("S0_DATA_QUALITY"))
	assert.Equal(t, "RECEIVED", StageReceived.String())
}

func TestPipelineErrorMessage(t *testing.T) {
	err := &PipelineError{Stage: StageAnalyzed, Err: errors.New("boom")}
	assert.Equal(t, "pipeline failed at ANALYZED: boom", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "boom")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "parse error",
			err:  &dataset.ParseError{Reason: "file is empty"},
			want: "Could not read the CSV file: file is empty.",
		},
		{
			name: "parse error inside pipeline error",
			err:  &PipelineError{Stage: StageParsed, Err: &dataset.ParseError{Reason: "no rows found"}},
			want: "Could not read the CSV file: no rows found.",
		},
		{
			name: "analysis error",
			err:  &PipelineError{Stage: StageAnalyzed, Err: &profile.AnalysisError{Reason: "no data rows to analyze"}},
			want: "Could not analyze the data: no data rows to analyze.",
		},
		{
			name: "render error",
			err:  &report.RenderError{Reason: "pdf layout failed"},
			want: "Could not generate the report: pdf layout failed.",
		},
		{
			name: "unknown error",
			err:  errors.New("disk on fire"),
			want: "Something went wrong while profiling the file. Please try again with a different file.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
