// Package janitor removes expired uploads and reports on a schedule.
package janitor

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/pkg/logger"
)

// Janitor runs retention sweeps over the input and output directories
// ⭐ SSOT: 보관 기간 정리는 이 패키지에서만
type Janitor struct {
	cron      *cron.Cron
	store     *storage.Store
	logger    *logger.Logger
	schedule  string
	retention time.Duration
}

// New creates a janitor sweeping files older than retention on the given
// cron schedule (six fields, with seconds). retention <= 0 disables it.
func New(store *storage.Store, schedule string, retention time.Duration, log *logger.Logger) *Janitor {
	return &Janitor{
		cron:      cron.New(cron.WithSeconds()),
		store:     store,
		logger:    log,
		schedule:  schedule,
		retention: retention,
	}
}

// Enabled reports whether sweeps will run.
func (j *Janitor) Enabled() bool {
	return j.retention > 0
}

// Start registers the sweep job and starts the cron loop.
func (j *Janitor) Start() error {
	if !j.Enabled() {
		j.logger.Info("Janitor disabled, keeping all files")
		return nil
	}

	if _, err := j.cron.AddFunc(j.schedule, j.sweep); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"schedule":  j.schedule,
		"retention": j.retention.String(),
	}).Info("Starting janitor")
	j.cron.Start()

	return nil
}

// Stop stops the cron loop and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	if !j.Enabled() {
		return
	}

	j.logger.Info("Stopping janitor")
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("Janitor stopped")
}

// RunNow sweeps immediately, outside the schedule.
func (j *Janitor) RunNow() {
	j.sweep()
}

func (j *Janitor) sweep() {
	removed, err := j.store.Sweep(j.retention)
	if err != nil {
		j.logger.WithError(err).Error("Sweep failed")
		return
	}
	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Sweep removed expired files")
	}
}
