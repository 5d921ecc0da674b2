package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ignite/agent-tracker/internal/pkg/httputil"
	"github.com/ignite/agent-tracker/internal/pkg/logger"
	"github.com/ignite/agent-tracker/internal/report"
	"github.com/ignite/agent-tracker/internal/session"
	"github.com/ignite/agent-tracker/internal/tracker"
)

// BoundsResponse is a date span as ISO dates.
type BoundsResponse struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// DatasetResponse summarizes the current dataset.
type DatasetResponse struct {
	ID         string           `json:"id"`
	File       string           `json:"file"`
	UploadedAt time.Time        `json:"uploaded_at"`
	Format     tracker.Format   `json:"format"`
	Encoding   tracker.Encoding `json:"encoding"`
	Rows       int              `json:"rows"`
	Dropped    int              `json:"dropped"`
	Columns    []string         `json:"columns"`
	Agents     []string         `json:"agents"`
	Bounds     BoundsResponse   `json:"bounds"`
}

// AgentsResponse is the agent list and the selectable date span.
type AgentsResponse struct {
	Agents []string       `json:"agents"`
	Bounds BoundsResponse `json:"bounds"`
}

// CriteriaResponse echoes the applied selection.
type CriteriaResponse struct {
	Agent string `json:"agent"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// VerdictResponse is the period outcome. Achieved is false for an empty
// selection; Status tells "no data" apart from a missed target.
type VerdictResponse struct {
	Status    tracker.Status `json:"status"`
	Achieved  bool           `json:"achieved"`
	Rows      int            `json:"rows"`
	Met       int            `json:"met"`
	Missed    int            `json:"missed"`
	Invalid   int            `json:"invalid"`
	Processed float64        `json:"processed_lots"`
	Target    float64        `json:"target_lots"`
}

// ReportResponse is the filtered, annotated table with its verdict.
type ReportResponse struct {
	Criteria CriteriaResponse    `json:"criteria"`
	Columns  []string            `json:"columns"`
	Rows     []report.DisplayRow `json:"rows"`
	Verdict  VerdictResponse     `json:"verdict"`
	Outcome  report.Banner       `json:"outcome"`
}

// CreateDataset handles POST /api/dataset
func (h *Handlers) CreateDataset(w http.ResponseWriter, r *http.Request) {
	entry, err := h.ingestUpload(w, r)
	if err != nil {
		status, code := uploadStatus(err)
		if status >= http.StatusInternalServerError {
			httputil.InternalError(w, err)
			return
		}
		httputil.Error(w, status, code, err.Error())
		return
	}
	httputil.JSON(w, http.StatusCreated, datasetResponse(entry))
}

// GetDataset handles GET /api/dataset
func (h *Handlers) GetDataset(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.store.Current()
	if !ok {
		httputil.NotFound(w, "no dataset loaded")
		return
	}
	httputil.OK(w, datasetResponse(entry))
}

// DeleteDataset handles DELETE /api/dataset
func (h *Handlers) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	logger.Info("dataset cleared")
	httputil.NoContent(w)
}

// GetAgents handles GET /api/dataset/agents
func (h *Handlers) GetAgents(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.store.Current()
	if !ok {
		httputil.NotFound(w, "no dataset loaded")
		return
	}
	httputil.OK(w, AgentsResponse{
		Agents: entry.Dataset.Agents(),
		Bounds: boundsResponse(entry.Dataset.Bounds()),
	})
}

// GetReport handles GET /api/report
// Query: agent, start, end; missing values default to the first agent and
// the full date range.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.store.Current()
	if !ok {
		httputil.NotFound(w, "no dataset loaded")
		return
	}

	sel, err := applySelection(entry.Dataset, r.URL.Query())
	if err != nil {
		selectionError(w, err)
		return
	}
	view, err := tracker.Filter(entry.Dataset, sel.Criteria())
	if err != nil {
		selectionError(w, err)
		return
	}

	v := view.Verdict()
	h.metrics.Report(string(v.Status))
	logger.Debug("report built",
		"selected_agent", view.Criteria.Agent,
		"start", tracker.FormatDate(view.Criteria.Start),
		"end", tracker.FormatDate(view.Criteria.End),
		"rows", v.Rows,
		"status", v.Status,
	)

	httputil.OK(w, ReportResponse{
		Criteria: CriteriaResponse{
			Agent: view.Criteria.Agent,
			Start: tracker.FormatISODate(view.Criteria.Start),
			End:   tracker.FormatISODate(view.Criteria.End),
		},
		Columns: report.Columns,
		Rows:    report.DisplayRows(view),
		Verdict: VerdictResponse{
			Status:    v.Status,
			Achieved:  v.Status == tracker.StatusAchieved,
			Rows:      v.Rows,
			Met:       v.Met,
			Missed:    v.Missed,
			Invalid:   v.Invalid,
			Processed: v.Processed,
			Target:    v.Target,
		},
		Outcome: report.Outcome(v),
	})
}

func selectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrUnknownAgent):
		httputil.BadRequest(w, "unknown_agent", err.Error())
	case errors.Is(err, tracker.ErrInvalidRange):
		httputil.BadRequest(w, "invalid_range", err.Error())
	default:
		httputil.InternalError(w, err)
	}
}

func datasetResponse(e session.Entry) DatasetResponse {
	ds := e.Dataset
	return DatasetResponse{
		ID:         e.ID,
		File:       e.FileName,
		UploadedAt: e.UploadedAt,
		Format:     ds.Format(),
		Encoding:   ds.Encoding(),
		Rows:       ds.Len(),
		Dropped:    ds.Dropped(),
		Columns:    ds.Columns(),
		Agents:     ds.Agents(),
		Bounds:     boundsResponse(ds.Bounds()),
	}
}

func boundsResponse(b tracker.Bounds) BoundsResponse {
	return BoundsResponse{Min: tracker.FormatISODate(b.Min), Max: tracker.FormatISODate(b.Max)}
}
