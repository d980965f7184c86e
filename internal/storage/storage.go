// Package storage manages the input and output directories: saving uploads
// under unique names, placing and resolving generated reports, and sweeping
// expired files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tabulens/tabulens/pkg/logger"
)

// Dirs holds the two working directories. Both are explicit configuration;
// nothing in the service assumes a default location.
type Dirs struct {
	Input  string
	Output string
}

// Store performs all filesystem access for uploads and reports.
type Store struct {
	dirs Dirs
	log  *logger.Logger
}

// New creates a Store over the given directories.
func New(dirs Dirs, log *logger.Logger) *Store {
	return &Store{
		dirs: dirs,
		log:  log,
	}
}

// Ensure creates the input and output directories if needed.
func (s *Store) Ensure() error {
	for _, dir := range []string{s.dirs.Input, s.dirs.Output} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

// InputDir returns the upload directory.
func (s *Store) InputDir() string {
	return s.dirs.Input
}

// OutputDir returns the report directory.
func (s *Store) OutputDir() string {
	return s.dirs.Output
}

// NewID returns a short unique identifier for one upload. Two uploads of the
// same filename never collide on disk.
func NewID() string {
	return uuid.NewString()[:8]
}

// SaveUpload stores an uploaded CSV under the input directory as
// <id>_<sanitized-name>.csv and returns the full path.
func (s *Store) SaveUpload(id, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s.csv", id, SanitizeBase(filename))
	path := filepath.Join(s.dirs.Input, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"upload_id": id,
		"path":      path,
	}).Debug("upload saved")

	return path, nil
}

// WriteReport writes report bytes to a temp file and atomically renames it
// into the output directory. Returns the full path.
func (s *Store) WriteReport(name string, data []byte) (string, error) {
	path := filepath.Join(s.dirs.Output, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write temp report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("atomic rename: %w", err)
	}
	return path, nil
}

// ReportPath resolves a report download name to a path inside the output
// directory. Names with separators, without the .pdf suffix, or not present
// on disk are rejected.
func (s *Store) ReportPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid report name")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return "", fmt.Errorf("invalid report name")
	}

	path := filepath.Join(s.dirs.Output, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("report not found")
	}
	return path, nil
}

// ReportFileName builds the output filename for a profiling run:
// <base>_profile_report_<timestamp>_<id>.pdf.
func ReportFileName(source, id string, ts time.Time) string {
	return fmt.Sprintf("%s_profile_report_%s_%s.pdf", SanitizeBase(source), ts.Format("20060102_1504"), id)
}

// SanitizeBase strips the extension and replaces every non-alphanumeric rune
// with an underscore, trimming leading and trailing underscores.
func SanitizeBase(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		out = "upload"
	}
	return out
}

// Sweep removes files older than maxAge from both directories and returns
// how many were deleted. maxAge <= 0 disables sweeping.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, dir := range []string{s.dirs.Input, s.dirs.Output} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, fmt.Errorf("read dir %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.log.WithError(err).WithField("path", path).Warn("sweep could not remove file")
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		s.log.WithField("removed", removed).Info("swept expired files")
	}
	return removed, nil
}
