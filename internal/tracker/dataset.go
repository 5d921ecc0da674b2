package tracker

import (
	"maps"
	"time"
)

// Dataset is the immutable result of ingesting one file. Records are sorted
// ascending by date. Accessors return copies so callers cannot mutate it.
type Dataset struct {
	records  []Record
	columns  []string
	dropped  int
	format   Format
	encoding Encoding
	agents   []string
	bounds   Bounds
}

func newDataset(records []Record, columns []string, dropped int, format Format, encoding Encoding) *Dataset {
	d := &Dataset{
		records:  records,
		columns:  columns,
		dropped:  dropped,
		format:   format,
		encoding: encoding,
	}

	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.Agent] {
			seen[r.Agent] = true
			d.agents = append(d.agents, r.Agent)
		}
	}
	if len(records) > 0 {
		d.bounds = Bounds{Min: records[0].Date, Max: records[len(records)-1].Date}
	}
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the records in date order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		out[i] = r.clone()
	}
	return out
}

// Columns returns the normalized header row.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Dropped is the number of rows excluded because their date did not parse.
func (d *Dataset) Dropped() int { return d.dropped }

func (d *Dataset) Format() Format     { return d.format }
func (d *Dataset) Encoding() Encoding { return d.encoding }

// Agents returns the distinct agent names in order of first appearance.
func (d *Dataset) Agents() []string {
	out := make([]string, len(d.agents))
	copy(out, d.agents)
	return out
}

func (r Record) clone() Record {
	r.Extra = maps.Clone(r.Extra)
	return r
}

// Bounds returns the earliest and latest record dates.
func (d *Dataset) Bounds() Bounds { return d.bounds }

// Contains reports whether t lies within the bounds, inclusive.
func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.Min) && !t.After(b.Max)
}

// String renders the bounds day-first, e.g. "01/05/2024–31/05/2024".
func (b Bounds) String() string {
	return FormatDate(b.Min) + "–" + FormatDate(b.Max)
}
