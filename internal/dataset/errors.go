package dataset

import "fmt"

// ParseError reports content that could not be turned into a table: bad
// encoding, no recognizable delimiter, malformed rows, or nothing to read.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse: %s: %v", e.Reason, e.Err)
	}
	return "parse: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
