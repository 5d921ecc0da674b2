package api

import (
	"net/url"

	"github.com/ignite/agent-tracker/internal/tracker"
)

// applySelection builds a selector for ds from the agent, start and end
// query parameters. Missing parameters keep the selector defaults (first
// agent, full range).
func applySelection(ds *tracker.Dataset, q url.Values) (*tracker.Selector, error) {
	sel := tracker.NewSelector(ds)
	err := sel.Apply(q.Get("agent"), q.Get("start"), q.Get("end"))
	return sel, err
}
