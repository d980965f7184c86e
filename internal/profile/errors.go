package profile

// AnalysisError reports a table that parsed correctly but cannot be profiled.
type AnalysisError struct {
	Reason string
}

func (e *AnalysisError) Error() string {
	return "analysis: " + e.Reason
}
