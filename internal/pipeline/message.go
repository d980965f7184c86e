package pipeline

import (
	"errors"

	"github.com/tabulens/tabulens/internal/dataset"
	"github.com/tabulens/tabulens/internal/profile"
	"github.com/tabulens/tabulens/internal/report"
)

// UserMessage maps a pipeline failure to the single message shown to the
// user. Wrapped causes stay in the logs; the user sees one sentence.
func UserMessage(err error) string {
	var parseErr *dataset.ParseError
	if errors.As(err, &parseErr) {
		return "Could not read the CSV file: " + parseErr.Reason + "."
	}

	var analysisErr *profile.AnalysisError
	if errors.As(err, &analysisErr) {
		return "Could not analyze the data: " + analysisErr.Reason + "."
	}

	var renderErr *report.RenderError
	if errors.As(err, &renderErr) {
		return "Could not generate the report: " + renderErr.Reason + "."
	}

	return "Something went wrong while profiling the file. Please try again with a different file."
}
