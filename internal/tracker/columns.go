package tracker

import "strings"

// Canonical column names used after header normalization.
const (
	ColAgentName     = "Agent name"
	ColDate          = "Date"
	ColQueue         = "Queue"
	ColProcessedLots = "Processed Lots"
	ColTargetLots    = "Target Lots"
	ColReasons       = "Reasons"
)

// requiredColumns must be present after alias resolution.
var requiredColumns = []string{ColAgentName, ColDate, ColProcessedLots, ColTargetLots}

// columnAliases maps lowercase, trimmed header names to canonical columns.
// Exports from the rota spreadsheet truncate or misspell some headers.
var columnAliases = map[string]string{
	// Agent
	"agent name": ColAgentName,
	"agent nam":  ColAgentName,
	"agent na":   ColAgentName,
	"agentname":  ColAgentName,
	"agent_name": ColAgentName,
	"agent":      ColAgentName,

	// Date
	"date": ColDate,
	"dat":  ColDate,
	"day":  ColDate,

	// Queue
	"queue": ColQueue,
	"queu":  ColQueue,
	"que":   ColQueue,

	// Processed
	"processed lots":  ColProcessedLots,
	"processed lot":   ColProcessedLots,
	"processed lo":    ColProcessedLots,
	"proccessed lots": ColProcessedLots,
	"procesed lots":   ColProcessedLots,
	"processed_lots":  ColProcessedLots,

	// Target
	"target lots": ColTargetLots,
	"target lot":  ColTargetLots,
	"target lo":   ColTargetLots,
	"traget lots": ColTargetLots,
	"target_lots": ColTargetLots,

	// Reasons
	"reasons": ColReasons,
	"reason":  ColReasons,
	"reaso":   ColReasons,
}

// CanonicalColumn trims a raw header and resolves it through the alias table.
// Unknown headers come back trimmed but otherwise unchanged, with ok=false.
func CanonicalColumn(header string) (name string, ok bool) {
	trimmed := strings.TrimSpace(header)
	if canonical, found := columnAliases[strings.ToLower(trimmed)]; found {
		return canonical, true
	}
	return trimmed, false
}

// ColumnMapping is the resolved layout of a header row.
type ColumnMapping struct {
	Headers []string       // normalized header per column index
	Index   map[string]int // canonical column -> first column index
	Extra   map[int]string // column index -> pass-through header
}

// MapColumns normalizes a header row and checks that every required
// canonical column is present. When two headers resolve to the same
// canonical column the first one wins and the other is passed through.
func MapColumns(header []string) (*ColumnMapping, error) {
	m := &ColumnMapping{
		Headers: make([]string, len(header)),
		Index:   make(map[string]int, len(header)),
		Extra:   make(map[int]string),
	}

	for i, h := range header {
		name, ok := CanonicalColumn(h)
		m.Headers[i] = name
		if ok {
			if _, dup := m.Index[name]; !dup {
				m.Index[name] = i
				continue
			}
		}
		if name != "" {
			m.Extra[i] = name
		}
	}

	for _, col := range requiredColumns {
		if _, ok := m.Index[col]; !ok {
			return nil, missingColumn(col)
		}
	}
	return m, nil
}

// cell returns the value of a canonical column in row, or "" when the column
// is absent or the row is short.
func (m *ColumnMapping) cell(row []string, col string) string {
	i, ok := m.Index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
