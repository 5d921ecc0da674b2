// Package report turns pipeline results into what the user sees: status
// banners, the selection form state and the annotated table.
package report

import (
	"errors"
	"fmt"

	"github.com/ignite/agent-tracker/internal/tracker"
)

// BannerLevel is the severity of a status banner.
type BannerLevel string

const (
	BannerInfo    BannerLevel = "info"
	BannerSuccess BannerLevel = "success"
	BannerWarning BannerLevel = "warning"
	BannerError   BannerLevel = "error"
)

// Banner is one status message.
type Banner struct {
	Level   BannerLevel `json:"level"`
	Message string      `json:"message"`
}

// User-facing messages.
const (
	MsgUpload      = "Upload your CSV file to get started."
	MsgNoData      = "No data available for the selected agent and date range."
	MsgAchieved    = "🎯 Target Achieved!"
	MsgNotAchieved = "⚠️ Target Not Achieved"
)

// Columns is the display order of the results table.
var Columns = []string{"Date", "Queue", "Processed Lots", "Target Lots", "Reasons", "Target Achieved"}

// DisplayRow is a table row formatted for display.
type DisplayRow struct {
	Date           string `json:"date"`
	Queue          string `json:"queue"`
	ProcessedLots  string `json:"processed_lots"`
	TargetLots     string `json:"target_lots"`
	Reasons        string `json:"reasons"`
	TargetAchieved bool   `json:"target_achieved"`
	Invalid        bool   `json:"invalid,omitempty"`
}

// Page is the full view model of the tracker page.
type Page struct {
	Title   string
	Notices []Banner

	// Selection form; only meaningful when Loaded.
	Loaded   bool
	FileName string
	RowCount int
	Agents   []string
	Bounds   tracker.Bounds
	Criteria tracker.FilterCriteria

	Rows    []DisplayRow
	Outcome *Banner
	Verdict *tracker.Verdict
}

// NewPage returns a page with no dataset loaded.
func NewPage(title string) *Page {
	return &Page{Title: title}
}

// AddError records a failed step as an error banner.
func (p *Page) AddError(err error) {
	p.Notices = append(p.Notices, Banner{Level: BannerError, Message: ErrorMessage(err)})
}

// SetDataset fills the selection form from a loaded dataset.
func (p *Page) SetDataset(fileName string, ds *tracker.Dataset, sel *tracker.Selector) {
	p.Loaded = true
	p.FileName = fileName
	p.RowCount = ds.Len()
	p.Agents = sel.Agents()
	p.Bounds = sel.Bounds()
	p.Criteria = sel.Criteria()
	if n := ds.Dropped(); n > 0 {
		p.Notices = append(p.Notices, Banner{Level: BannerInfo, Message: DroppedMessage(n)})
	}
}

// SetView fills the table and the period outcome. An empty view is reported
// as "no data", never as an achieved target.
func (p *Page) SetView(v *tracker.FilteredView) {
	p.Criteria = v.Criteria
	p.Rows = DisplayRows(v)

	verdict := v.Verdict()
	p.Verdict = &verdict
	outcome := Outcome(verdict)
	p.Outcome = &outcome

	if verdict.Invalid > 0 {
		p.Notices = append(p.Notices, Banner{Level: BannerWarning, Message: InvalidMessage(verdict.Invalid)})
	}
}

// DisplayRows formats a filtered view for the table.
func DisplayRows(v *tracker.FilteredView) []DisplayRow {
	rows := make([]DisplayRow, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, DisplayRow{
			Date:           tracker.FormatDate(r.Date),
			Queue:          r.Queue,
			ProcessedLots:  r.ProcessedLots.String(),
			TargetLots:     r.TargetLots.String(),
			Reasons:        r.Reasons,
			TargetAchieved: r.TargetAchieved,
			Invalid:        r.Err != nil,
		})
	}
	return rows
}

// Outcome maps a verdict to its banner.
func Outcome(v tracker.Verdict) Banner {
	switch v.Status {
	case tracker.StatusNoData:
		return Banner{Level: BannerWarning, Message: MsgNoData}
	case tracker.StatusAchieved:
		return Banner{Level: BannerSuccess, Message: MsgAchieved}
	default:
		return Banner{Level: BannerWarning, Message: MsgNotAchieved}
	}
}

// DroppedMessage tells the user how many rows were skipped during ingest.
func DroppedMessage(n int) string {
	if n == 1 {
		return "1 row with an unreadable date was skipped."
	}
	return fmt.Sprintf("%d rows with unreadable dates were skipped.", n)
}

// InvalidMessage tells the user how many rows could not be compared.
func InvalidMessage(n int) string {
	if n == 1 {
		return "1 row has non-numeric lot counts and counts as not achieved."
	}
	return fmt.Sprintf("%d rows have non-numeric lot counts and count as not achieved.", n)
}

// ErrorMessage turns a pipeline error into text fit for a banner.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, tracker.ErrUnreadable):
		return "The file could not be read. Upload a CSV or .xlsx file. (" + err.Error() + ")"
	case errors.Is(err, tracker.ErrMissingColumn):
		return "The file is missing a required column. (" + err.Error() + ")"
	case errors.Is(err, tracker.ErrEmpty):
		return "No valid dates found. Dates must be written DD/MM/YYYY."
	case errors.Is(err, tracker.ErrInvalidRange):
		return "The selected date range is not valid. (" + err.Error() + ")"
	case errors.Is(err, tracker.ErrUnknownAgent):
		return "The selected agent is not in this file. (" + err.Error() + ")"
	default:
		return "Something went wrong while building the report."
	}
}
