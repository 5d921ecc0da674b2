package tracker

import "fmt"

// FilteredView is the set of rows selected by a FilterCriteria.
type FilteredView struct {
	Criteria FilterCriteria
	Rows     []Row
}

// Validate checks the criteria against the dataset bounds.
func (c FilterCriteria) Validate(b Bounds) error {
	if c.Start.After(c.End) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, FormatDate(c.Start), FormatDate(c.End))
	}
	if !b.Contains(c.Start) || !b.Contains(c.End) {
		return fmt.Errorf("%w: %s–%s outside %s", ErrInvalidRange, FormatDate(c.Start), FormatDate(c.End), b)
	}
	return nil
}

// Filter selects the agent's rows within [Start, End] and annotates each
// with TargetAchieved. The dataset is not modified.
func Filter(ds *Dataset, c FilterCriteria) (*FilteredView, error) {
	c.Start, c.End = dateOnly(c.Start), dateOnly(c.End)
	if err := c.Validate(ds.Bounds()); err != nil {
		return nil, err
	}
	return &FilteredView{Criteria: c, Rows: FilterRecords(ds.records, c)}, nil
}

// FilterRecords applies the criteria without bounds validation. Applying it
// to the records of a view built with the same criteria yields the same rows.
func FilterRecords(records []Record, c FilterCriteria) []Row {
	var rows []Row
	for _, r := range records {
		if r.Agent != c.Agent || r.Date.Before(c.Start) || r.Date.After(c.End) {
			continue
		}
		rows = append(rows, Annotate(r))
	}
	return rows
}

// Annotate compares processed against target lots. Equal counts meet the
// target. Missing or non-numeric counts fail the comparison with an error.
// The row holds its own copy of the record's extra columns.
func Annotate(r Record) Row {
	row := Row{Record: r.clone()}
	if !r.ProcessedLots.Valid || !r.TargetLots.Valid {
		row.Err = fmt.Errorf("%w: processed %q, target %q", ErrNonNumericTarget, r.ProcessedLots.Raw, r.TargetLots.Raw)
		return row
	}
	row.TargetAchieved = r.ProcessedLots.Value >= r.TargetLots.Value
	return row
}

// Records returns the underlying records of the view.
func (v *FilteredView) Records() []Record {
	out := make([]Record, len(v.Rows))
	for i, row := range v.Rows {
		out[i] = row.Record.clone()
	}
	return out
}

// Empty reports whether nothing matched.
func (v *FilteredView) Empty() bool { return len(v.Rows) == 0 }

// Verdict folds the rows into a period summary.
func (v *FilteredView) Verdict() Verdict {
	verdict := Verdict{Achieved: true, Rows: len(v.Rows)}
	for _, row := range v.Rows {
		switch {
		case row.Err != nil:
			verdict.Invalid++
		case row.TargetAchieved:
			verdict.Met++
		default:
			verdict.Missed++
		}
		if !row.TargetAchieved {
			verdict.Achieved = false
		}
		if row.ProcessedLots.Valid {
			verdict.Processed += row.ProcessedLots.Value
		}
		if row.TargetLots.Valid {
			verdict.Target += row.TargetLots.Value
		}
	}

	switch {
	case verdict.Rows == 0:
		verdict.Status = StatusNoData
	case verdict.Achieved:
		verdict.Status = StatusAchieved
	default:
		verdict.Status = StatusNotAchieved
	}
	return verdict
}
