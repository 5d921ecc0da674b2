package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/agent-tracker/internal/tracker"
)

func render(t *testing.T, p *Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	out, err := r.Render(p)
	require.NoError(t, err)
	return string(out)
}

func TestRenderEmptyPage(t *testing.T) {
	html := render(t, NewPage("Agent Performance Tracker"))

	assert.Contains(t, html, "<title>Agent Performance Tracker</title>")
	assert.Contains(t, html, `action="/upload"`)
	assert.NotContains(t, html, "Select Agent Name")
	assert.NotContains(t, html, "<table>")
}

func TestRenderReport(t *testing.T) {
	html := render(t, loadPage(t, 1, 2))

	assert.Contains(t, html, "Select Agent Name")
	assert.Contains(t, html, `<option value="A" selected>A</option>`)
	assert.Contains(t, html, `name="start" value="2024-05-01" min="2024-05-01" max="2024-05-03"`)
	assert.Contains(t, html, `name="end" value="2024-05-02" min="2024-05-01"`)
	assert.Contains(t, html, "01/05/2024–03/05/2024")
	assert.Contains(t, html, "<td>02/05/2024</td>")
	assert.Contains(t, html, "<td>Yes</td>")
	assert.Contains(t, html, "<td>No</td>")
	assert.Contains(t, html, "Cliente não atendeu")
	assert.Contains(t, html, MsgNotAchieved)
}

func TestRenderNoDataIsNotSuccess(t *testing.T) {
	ds, err := tracker.Ingest([]byte(trackerCSV), tracker.FormatCSV)
	require.NoError(t, err)
	p := NewPage("Tracker")
	p.SetDataset("may.csv", ds, tracker.NewSelector(ds))
	view, err := tracker.Filter(ds, tracker.FilterCriteria{Agent: "B", Start: day(1), End: day(3)})
	require.NoError(t, err)
	p.SetView(view)

	html := render(t, p)
	assert.Contains(t, html, MsgNoData)
	assert.NotContains(t, html, MsgAchieved)
	assert.NotContains(t, html, "<table>")
}

func TestRenderEscapesUserText(t *testing.T) {
	p := NewPage("Tracker")
	p.AddError(fmt.Errorf("%w: <script>alert(1)</script>", tracker.ErrUnreadable))

	html := render(t, p)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, html, `class="banner error"`)
}
