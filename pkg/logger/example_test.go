package logger_test

import (
	"errors"

	"github.com/tabulens/tabulens/pkg/config"
	"github.com/tabulens/tabulens/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Server started")
	log.Warn("Output directory almost full")
	log.Error("Report generation failed")

	// Formatted logging
	log.Infof("Profiling %s", "sales.csv")
	log.Warnf("Sweep removed %d of %d files", 3, 5)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add single field
	uploadLog := log.WithField("upload_id", "ab12cd34")
	uploadLog.Info("Upload accepted")

	// Add multiple fields
	resultLog := log.WithFields(map[string]interface{}{
		"file":    "sales.csv",
		"rows":    1200,
		"columns": 14,
		"stage":   "analyzed",
	})
	resultLog.Info("Analysis complete")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Log with error
	err := errors.New("unable to determine csv delimiter")
	log.WithError(err).Error("Failed to parse upload")

	// Combine error with fields
	log.WithError(err).
		WithFields(map[string]interface{}{
			"file":       "broken.csv",
			"size_bytes": 5120,
		}).
		Error("Upload rejected")
}

// Example_environments demonstrates different log formats
func Example_environments() {
	// Development: Pretty console logs
	devCfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	}
	devLog := logger.New(devCfg)
	devLog.Debug("Debugging request flow")
	devLog.Info("Upload received")

	// Production: JSON logs
	prodCfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}
	prodLog := logger.New(prodCfg)
	prodLog.Info("Service started")
	prodLog.Warn("High memory usage detected")
}
