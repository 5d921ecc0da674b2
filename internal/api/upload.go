package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/agent-tracker/internal/pkg/logger"
	"github.com/ignite/agent-tracker/internal/session"
	"github.com/ignite/agent-tracker/internal/tracker"
)

// Multipart framing allowance on top of the configured file size limit.
const multipartOverhead = 64 << 10

var (
	errTooLarge    = errors.New("file too large")
	errMissingFile = errors.New("file is required")
)

// uploadError carries the HTTP status for a failed upload.
type uploadError struct {
	status int
	code   string
	err    error
}

func (e *uploadError) Error() string { return e.err.Error() }
func (e *uploadError) Unwrap() error { return e.err }

// ingestUpload reads the multipart "file" field, ingests it and installs the
// result as the current dataset. The previous dataset survives any failure.
func (h *Handlers) ingestUpload(w http.ResponseWriter, r *http.Request) (session.Entry, error) {
	entry, format, err := h.loadUpload(w, r)
	if err != nil {
		_, code := uploadStatus(err)
		h.metrics.Upload(string(format), code, 0, 0)
		return session.Entry{}, err
	}
	h.metrics.Upload(string(format), "ok", entry.Dataset.Len(), entry.Dataset.Dropped())
	return entry, nil
}

func (h *Handlers) loadUpload(w http.ResponseWriter, r *http.Request) (session.Entry, tracker.Format, error) {
	maxBytes := h.config.Upload.MaxBytes
	limit := maxBytes + multipartOverhead
	if r.ContentLength > limit {
		return session.Entry{}, "", tooLarge(maxBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return session.Entry{}, "", tooLarge(maxBytes)
		}
		return session.Entry{}, "", &uploadError{http.StatusBadRequest, "invalid_form", fmt.Errorf("read upload: %w", err)}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return session.Entry{}, "", &uploadError{http.StatusBadRequest, "missing_file", errMissingFile}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return session.Entry{}, "", &uploadError{http.StatusBadRequest, "invalid_form", fmt.Errorf("read upload: %w", err)}
	}
	if int64(len(data)) > maxBytes {
		return session.Entry{}, "", tooLarge(maxBytes)
	}

	format, err := tracker.ResolveFormat(r.FormValue("format"), header.Filename, data)
	if err != nil {
		return session.Entry{}, "", &uploadError{http.StatusUnprocessableEntity, "unreadable", err}
	}

	ds, err := tracker.Ingest(data, format)
	if err != nil {
		logger.Warn("ingest failed", "file", header.Filename, "format", format, "error", err)
		return session.Entry{}, format, &uploadError{http.StatusUnprocessableEntity, ingestCode(err), err}
	}

	entry := h.store.Replace(ds, header.Filename)
	logger.Info("dataset loaded",
		"id", entry.ID,
		"file", entry.FileName,
		"format", ds.Format(),
		"encoding", ds.Encoding(),
		"rows", ds.Len(),
		"distinct_names", len(ds.Agents()),
	)
	if n := ds.Dropped(); n > 0 {
		logger.Warn("rows with unreadable dates dropped", "file", entry.FileName, "dropped", n)
	}
	return entry, format, nil
}

func ingestCode(err error) string {
	switch {
	case errors.Is(err, tracker.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, tracker.ErrEmpty):
		return "empty"
	default:
		return "unreadable"
	}
}

func tooLarge(maxBytes int64) error {
	return &uploadError{
		status: http.StatusRequestEntityTooLarge,
		code:   "too_large",
		err:    fmt.Errorf("%w: limit is %d bytes", errTooLarge, maxBytes),
	}
}

// uploadStatus unpacks an ingestUpload error.
func uploadStatus(err error) (int, string) {
	var ue *uploadError
	if errors.As(err, &ue) {
		return ue.status, ue.code
	}
	return http.StatusInternalServerError, "internal"
}
