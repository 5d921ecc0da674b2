package report

import (
	"embed"
	"fmt"
	"time"

	"github.com/osteele/liquid"

	"github.com/ignite/agent-tracker/internal/tracker"
)

//go:embed templates/page.liquid
var templates embed.FS

// Renderer renders the tracker page with the Liquid template engine.
type Renderer struct {
	engine *liquid.Engine
	page   *liquid.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	src, err := templates.ReadFile("templates/page.liquid")
	if err != nil {
		return nil, fmt.Errorf("read page template: %w", err)
	}

	r := &Renderer{engine: liquid.NewEngine()}
	r.registerFilters()

	tpl, serr := r.engine.ParseTemplate(src)
	if serr != nil {
		return nil, fmt.Errorf("parse page template: %w", serr)
	}
	r.page = tpl
	return r, nil
}

// registerFilters adds the display filters used by the page template.
func (r *Renderer) registerFilters() {
	// ISO date (form value) to day-first: {{ min_date | ddmmyyyy }}
	r.engine.RegisterFilter("ddmmyyyy", func(s string) string {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return s
		}
		return tracker.FormatDate(t)
	})

	// Target column: {{ row.target_achieved | yesno }}
	r.engine.RegisterFilter("yesno", func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	})
}

// Render produces the HTML page.
func (r *Renderer) Render(p *Page) ([]byte, error) {
	out, serr := r.page.Render(p.bindings())
	if serr != nil {
		return nil, fmt.Errorf("render page: %w", serr)
	}
	return out, nil
}

// bindings flattens the page into plain maps and slices for the template.
func (p *Page) bindings() liquid.Bindings {
	notices := make([]map[string]interface{}, 0, len(p.Notices))
	for _, b := range p.Notices {
		notices = append(notices, bannerBinding(b))
	}

	rows := make([]map[string]interface{}, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, map[string]interface{}{
			"date":            r.Date,
			"queue":           r.Queue,
			"processed_lots":  r.ProcessedLots,
			"target_lots":     r.TargetLots,
			"reasons":         r.Reasons,
			"target_achieved": r.TargetAchieved,
			"invalid":         r.Invalid,
		})
	}

	b := liquid.Bindings{
		"title":     p.Title,
		"notices":   notices,
		"loaded":    p.Loaded,
		"file_name": p.FileName,
		"row_count": p.RowCount,
		"agents":    p.Agents,
		"agent":     p.Criteria.Agent,
		"columns":   Columns,
		"rows":      rows,
		"outcome":   nil,
	}
	if p.Loaded {
		b["min_date"] = tracker.FormatISODate(p.Bounds.Min)
		b["max_date"] = tracker.FormatISODate(p.Bounds.Max)
		b["start"] = tracker.FormatISODate(p.Criteria.Start)
		b["end"] = tracker.FormatISODate(p.Criteria.End)
	}
	if p.Outcome != nil {
		b["outcome"] = bannerBinding(*p.Outcome)
	}
	return b
}

func bannerBinding(b Banner) map[string]interface{} {
	return map[string]interface{}{"level": string(b.Level), "message": b.Message}
}
