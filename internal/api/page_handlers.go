package api

import (
	"errors"
	"net/http"

	"github.com/ignite/agent-tracker/internal/pkg/logger"
	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/tracker"
)

// Page handles GET /
// Query: agent, start, end (YYYY-MM-DD or DD/MM/YYYY)
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	p := report.NewPage(h.config.Report.Title)

	entry, ok := h.store.Current()
	if !ok {
		p.Notices = append(p.Notices, report.Banner{Level: report.BannerInfo, Message: report.MsgUpload})
		h.renderPage(w, http.StatusOK, p)
		return
	}

	// A bad selection is reported on the page; the selector keeps its last
	// valid state so the report still renders.
	sel, selErr := applySelection(entry.Dataset, r.URL.Query())
	p.SetDataset(entry.FileName, entry.Dataset, sel)
	if selErr != nil {
		logger.Debug("selection rejected", "error", selErr)
		p.AddError(selErr)
	}

	view, err := tracker.Filter(entry.Dataset, sel.Criteria())
	if err != nil {
		p.AddError(err)
		h.renderPage(w, http.StatusOK, p)
		return
	}
	p.SetView(view)
	h.metrics.Report(string(p.Verdict.Status))
	h.renderPage(w, http.StatusOK, p)
}

// Upload handles POST /upload (multipart form, field "file", optional
// "format"). Success redirects to the report page.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ingestUpload(w, r); err != nil {
		status, _ := uploadStatus(err)
		p := report.NewPage(h.config.Report.Title)
		p.Notices = append(p.Notices, report.Banner{Level: report.BannerError, Message: uploadMessage(err)})
		h.renderPage(w, status, p)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, errTooLarge):
		return "The file is too large. (" + err.Error() + ")"
	case errors.Is(err, errMissingFile):
		return "Choose a file to upload."
	default:
		return report.ErrorMessage(err)
	}
}
