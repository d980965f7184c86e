package pipeline

import (
	"path/filepath"
	"time"

	"github.com/tabulens/tabulens/internal/dataset"
	"github.com/tabulens/tabulens/internal/profile"
	"github.com/tabulens/tabulens/internal/report"
	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/pkg/logger"
)

// Runner executes the profiling pipeline. Runs are synchronous: one call
// takes a stored upload all the way to a written report.
type Runner struct {
	analyzer *profile.Analyzer
	renderer *report.Renderer
	store    *storage.Store
	log      *logger.Logger
}

// NewRunner creates a Runner over the given analysis, rendering, and
// storage components.
func NewRunner(analyzer *profile.Analyzer, renderer *report.Renderer, store *storage.Store, log *logger.Logger) *Runner {
	return &Runner{
		analyzer: analyzer,
		renderer: renderer,
		store:    store,
		log:      log,
	}
}

// Result describes a completed run.
type Result struct {
	ID         string `json:"id"`
	Stage      Stage  `json:"stage"`
	SourceName string `json:"source_name"`
	ReportName string `json:"report_name"`
	ReportPath string `json:"report_path"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	Duration   int64  `json:"duration_ms"`
}

// RunFile profiles the CSV at path and writes the PDF report into the
// output directory. id tags the run's log lines and the report filename.
// source is the user-facing filename shown in the report; pass "" to use
// the file's own name. On failure the returned error is a *PipelineError
// naming the stage that broke; unwrap it for the cause.
func (r *Runner) RunFile(path, id, source string) (*Result, error) {
	start := time.Now()
	log := r.log.WithFields(map[string]interface{}{
		"upload_id": id,
		"file":      filepath.Base(path),
	})
	log.Info("pipeline run started")

	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, r.fail(log, StageParsed, err)
	}
	if source != "" {
		ds.SourceName = source
	}
	log.WithFields(map[string]interface{}{
		"stage":     StageParsed.String(),
		"rows":      ds.NumRows(),
		"cols":      ds.NumCols(),
		"encoding":  ds.Encoding,
		"delimiter": string(ds.Delimiter),
	}).Info("dataset parsed")

	p, err := r.analyzer.Analyze(ds)
	if err != nil {
		return nil, r.fail(log, StageAnalyzed, err)
	}
	log.WithField("stage", StageAnalyzed.String()).Info("dataset analyzed")

	data, err := r.renderer.Render(ds, p)
	if err != nil {
		return nil, r.fail(log, StageRendered, err)
	}

	name := storage.ReportFileName(ds.SourceName, id, time.Now())
	reportPath, err := r.store.WriteReport(name, data)
	if err != nil {
		return nil, r.fail(log, StageRendered, err)
	}

	res := &Result{
		ID:         id,
		Stage:      StageRendered,
		SourceName: ds.SourceName,
		ReportName: name,
		ReportPath: reportPath,
		Rows:       ds.NumRows(),
		Cols:       ds.NumCols(),
		Duration:   time.Since(start).Milliseconds(),
	}
	log.WithFields(map[string]interface{}{
		"stage":       res.Stage.String(),
		"report":      res.ReportName,
		"duration_ms": res.Duration,
	}).Info("pipeline run finished")

	return res, nil
}

// fail logs the broken stage and wraps the cause.
func (r *Runner) fail(log *logger.Logger, stage Stage, err error) error {
	log.WithFields(map[string]interface{}{
		"stage":  StageFailed.String(),
		"broken": stage.String(),
	}).WithError(err).Error("pipeline run failed")
	return &PipelineError{Stage: stage, Err: err}
}
