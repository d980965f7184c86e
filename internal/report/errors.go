package report

import "fmt"

// RenderError reports a report that could not be produced: nothing to
// render, a chart that failed to draw, or a PDF layout failure.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render: %s: %v", e.Reason, e.Err)
	}
	return "render: " + e.Reason
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
