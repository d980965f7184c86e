// Package handlers holds the HTTP handlers of the profiling service.
package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"github.com/tabulens/tabulens/internal/pipeline"
	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/internal/web/templates"
	"github.com/tabulens/tabulens/pkg/logger"
)

// ValidationError reports an upload rejected before any parsing happened:
// missing file, wrong extension, empty body, or a body over the size limit.
// Reason is the sentence shown to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// UploadHandler serves the upload form, accepts CSV uploads, and hands out
// generated reports.
type UploadHandler struct {
	runner   *pipeline.Runner
	store    *storage.Store
	maxBytes int64
	logger   *logger.Logger
}

// NewUploadHandler creates a new upload handler. maxBytes caps the request
// body of POST /upload.
func NewUploadHandler(
	runner *pipeline.Runner,
	store *storage.Store,
	maxBytes int64,
	log *logger.Logger,
) *UploadHandler {
	return &UploadHandler{
		runner:   runner,
		store:    store,
		maxBytes: maxBytes,
		logger:   log,
	}
}

// page is the template model of the upload form.
type page struct {
	Error  string
	Result *pipeline.Result
}

// Index renders the upload form
// GET /
func (h *UploadHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, page{})
}

// Upload accepts a CSV file and runs the profiling pipeline on it. Failures
// re-render the form with a single message; nothing here is fatal.
// POST /upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.acceptUpload(w, r)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			h.logger.WithField("stage", pipeline.StageFailed.String()).WithError(err).Warn("Upload rejected")
			h.renderPage(w, http.StatusBadRequest, page{Error: verr.Reason})
			return
		}
		h.logger.WithError(err).Error("Failed to read upload")
		h.renderPage(w, http.StatusBadRequest, page{Error: "Could not read the upload. Please try again."})
		return
	}
	defer file.Close()

	id := storage.NewID()
	h.logger.WithFields(map[string]interface{}{
		"stage":     pipeline.StageReceived.String(),
		"upload_id": id,
		"file":      header.Filename,
		"bytes":     header.Size,
	}).Info("Upload received")

	path, err := h.store.SaveUpload(id, header.Filename, file)
	if err != nil {
		h.logger.WithError(err).Error("Failed to store upload")
		h.renderPage(w, http.StatusInternalServerError, page{Error: "Could not store the uploaded file. Please try again."})
		return
	}

	res, err := h.runner.RunFile(path, id, header.Filename)
	if err != nil {
		h.renderPage(w, http.StatusUnprocessableEntity, page{Error: pipeline.UserMessage(err)})
		return
	}

	h.renderPage(w, http.StatusOK, page{Result: res})
}

// Download serves a generated PDF report as an attachment
// GET /reports/{name}
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	path, err := h.store.ReportPath(name)
	if err != nil {
		h.logger.WithField("report", name).WithError(err).Warn("Report lookup failed")
		http.NotFound(w, r)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"stage":  pipeline.StageServed.String(),
		"report": name,
	}).Info("Report served")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

// acceptUpload validates the multipart request and returns the CSV part.
// Every rejection is a *ValidationError; nothing has been parsed yet.
func (h *UploadHandler) acceptUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, &ValidationError{
				Reason: fmt.Sprintf("The file exceeds the %s upload limit", humanize.IBytes(uint64(h.maxBytes))),
			}
		}
		return nil, nil, &ValidationError{Reason: "No file selected"}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, &ValidationError{Reason: "No file selected"}
	}

	if header.Filename == "" {
		file.Close()
		return nil, nil, &ValidationError{Reason: "No file selected"}
	}
	if strings.ToLower(filepath.Ext(header.Filename)) != ".csv" {
		file.Close()
		return nil, nil, &ValidationError{Reason: "Please select a valid CSV file"}
	}
	if header.Size == 0 {
		file.Close()
		return nil, nil, &ValidationError{Reason: "The selected file is empty"}
	}

	return file, header, nil
}

// renderPage writes the upload form with the given model.
func (h *UploadHandler) renderPage(w http.ResponseWriter, status int, data page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Index.Execute(w, data); err != nil {
		h.logger.WithError(err).Error("Failed to render page")
	}
}
