package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabulens/tabulens/internal/pipeline"
	"github.com/tabulens/tabulens/internal/profile"
	"github.com/tabulens/tabulens/internal/report"
	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/pkg/logger"
)

const goldenCSV = "a,b\n1,2\n3,4\n5,6\n"

func testHandler(t *testing.T, maxBytes int64) (*UploadHandler, *storage.Store) {
	t.Helper()
	log := logger.NewNop()
	store := storage.New(storage.Dirs{
		Input:  filepath.Join(t.TempDir(), "input"),
		Output: filepath.Join(t.TempDir(), "output"),
	}, log)
	require.NoError(t, store.Ensure())

	runner := pipeline.NewRunner(
		profile.NewAnalyzer(0.5, log),
		report.NewRenderer(30, log),
		store,
		log,
	)
	return NewUploadHandler(runner, store, maxBytes, log), store
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doUpload(t *testing.T, h *UploadHandler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := multipartBody(t, "file", filename, content)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	return rec
}

func parsePage(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestIndex(t *testing.T) {
	h, _ := testHandler(t, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Index(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	doc := parsePage(t, rec)
	assert.Equal(t, 1, doc.Find(`form[action="/upload"]`).Length())
	assert.Equal(t, 1, doc.Find(`input[type="file"][name="file"]`).Length())
	assert.Equal(t, 0, doc.Find(".error").Length())
	assert.Equal(t, 0, doc.Find(".success").Length())
}

func TestUploadSuccess(t *testing.T) {
	h, _ := testHandler(t, 1<<20)

	rec := doUpload(t, h, "data.csv", goldenCSV)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parsePage(t, rec)
	require.Equal(t, 1, doc.Find(".success").Length())
	assert.Contains(t, doc.Find(".success").Text(), "3 rows and 2 columns")

	href, ok := doc.Find(".success a").Attr("href")
	require.True(t, ok, "success box should link to the report")
	assert.True(t, strings.HasPrefix(href, "/reports/data_profile_report_"), "unexpected link %q", href)
	assert.True(t, strings.HasSuffix(href, ".pdf"))

	// Following the link downloads the PDF.
	router := mux.NewRouter()
	router.HandleFunc("/reports/{name}", h.Download)

	dlReq := httptest.NewRequest(http.MethodGet, href, nil)
	dlRec := httptest.NewRecorder()
	router.ServeHTTP(dlRec, dlReq)

	require.Equal(t, http.StatusOK, dlRec.Code)
	assert.Equal(t, "application/pdf", dlRec.Header().Get("Content-Type"))
	assert.Contains(t, dlRec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(dlRec.Body.String(), "%PDF"))
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		content  string
		wantMsg  string
	}{
		{
			name:     "wrong extension",
			field:    "file",
			filename: "data.txt",
			content:  goldenCSV,
			wantMsg:  "Please select a valid CSV file",
		},
		{
			name:     "missing file field",
			field:    "document",
			filename: "data.csv",
			content:  goldenCSV,
			wantMsg:  "No file selected",
		},
		{
			name:     "empty filename",
			field:    "file",
			filename: "",
			content:  goldenCSV,
			wantMsg:  "No file selected",
		},
		{
			name:     "empty file",
			field:    "file",
			filename: "data.csv",
			content:  "",
			wantMsg:  "The selected file is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := testHandler(t, 1<<20)

			body, ctype := multipartBody(t, tt.field, tt.filename, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", ctype)
			rec := httptest.NewRecorder()
			h.Upload(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			doc := parsePage(t, rec)
			assert.Contains(t, doc.Find(".error").Text(), tt.wantMsg)
			assert.Equal(t, 0, doc.Find(".success").Length())

			entries := inputDirEntries(t, store)
			assert.Empty(t, entries, "rejected uploads must not be stored")
		})
	}
}

func TestUploadNotMultipart(t *testing.T) {
	h, _ := testHandler(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("plain body"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	doc := parsePage(t, rec)
	assert.Contains(t, doc.Find(".error").Text(), "No file selected")
}

func TestUploadTooLarge(t *testing.T) {
	h, _ := testHandler(t, 100)

	rec := doUpload(t, h, "data.csv", strings.Repeat("a", 2048))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	doc := parsePage(t, rec)
	assert.Contains(t, doc.Find(".error").Text(), "exceeds the 100 B upload limit")
}

func TestUploadPipelineFailure(t *testing.T) {
	t.Run("no data rows", func(t *testing.T) {
		h, _ := testHandler(t, 1<<20)

		rec := doUpload(t, h, "headers.csv", "a,b\n")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		doc := parsePage(t, rec)
		assert.Contains(t, doc.Find(".error").Text(), "Could not analyze the data: no data rows to analyze.")
	})

	t.Run("unreadable content", func(t *testing.T) {
		h, _ := testHandler(t, 1<<20)

		rec := doUpload(t, h, "blank.csv", "   \n   \n")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		doc := parsePage(t, rec)
		assert.Contains(t, doc.Find(".error").Text(), "Could not read the CSV file")
	})
}

func TestDownloadRejectsBadNames(t *testing.T) {
	h, store := testHandler(t, 1<<20)
	_, err := store.WriteReport("data_profile_report_20260101_0101_ab12cd34.pdf", []byte("%PDF-1.4\n"))
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/reports/{name}", h.Download)

	for _, name := range []string{"report.txt", "missing.pdf", "..%2Fsecrets.pdf"} {
		req := httptest.NewRequest(http.MethodGet, "/reports/"+name, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, "name %q should be rejected", name)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Reason: "No file selected"}
	assert.Equal(t, "validation: No file selected", err.Error())
}

func inputDirEntries(t *testing.T, store *storage.Store) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(store.InputDir(), "*"))
	require.NoError(t, err)
	return matches
}
