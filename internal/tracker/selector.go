package tracker

import (
	"errors"
	"fmt"
	"time"
)

// Selector holds the interactive agent and date-range choice for a dataset.
// Every change is validated against the current state: the start must stay
// within the dataset bounds, and the end may never fall before the start nor
// after the last date. Moving the start past the end drags the end along.
type Selector struct {
	agents []string
	known  map[string]bool
	bounds Bounds
	crit   FilterCriteria
}

// NewSelector starts with the first agent and the full date range.
func NewSelector(ds *Dataset) *Selector {
	s := &Selector{
		agents: ds.Agents(),
		known:  make(map[string]bool),
		bounds: ds.Bounds(),
	}
	for _, a := range s.agents {
		s.known[a] = true
	}
	if len(s.agents) > 0 {
		s.crit.Agent = s.agents[0]
	}
	s.crit.Start = s.bounds.Min
	s.crit.End = s.bounds.Max
	return s
}

// Agents returns the selectable agent names.
func (s *Selector) Agents() []string {
	out := make([]string, len(s.agents))
	copy(out, s.agents)
	return out
}

// Bounds returns the dataset date bounds.
func (s *Selector) Bounds() Bounds { return s.bounds }

// EndBounds is the valid range for the end date given the current start.
func (s *Selector) EndBounds() Bounds {
	return Bounds{Min: s.crit.Start, Max: s.bounds.Max}
}

// Criteria returns the current selection.
func (s *Selector) Criteria() FilterCriteria { return s.crit }

// SetAgent selects an agent present in the dataset.
func (s *Selector) SetAgent(agent string) error {
	if !s.known[agent] {
		return fmt.Errorf("%w: %q", ErrUnknownAgent, agent)
	}
	s.crit.Agent = agent
	return nil
}

// SetStart moves the start date and re-clamps the end so it is not before it.
func (s *Selector) SetStart(start time.Time) error {
	start = dateOnly(start)
	if !s.bounds.Contains(start) {
		return fmt.Errorf("%w: start %s outside %s", ErrInvalidRange, FormatDate(start), s.bounds)
	}
	s.crit.Start = start
	if s.crit.End.Before(start) {
		s.crit.End = start
	}
	return nil
}

// SetEnd moves the end date within [start, dataset max].
func (s *Selector) SetEnd(end time.Time) error {
	end = dateOnly(end)
	if eb := s.EndBounds(); !eb.Contains(end) {
		return fmt.Errorf("%w: end %s outside %s", ErrInvalidRange, FormatDate(end), eb)
	}
	s.crit.End = end
	return nil
}

// Apply sets the agent, start and end from user input. Empty values keep the
// current choice. Dates may be ISO or day/month/year. Each value is applied on
// its own: a rejected agent does not stop the dates, and a rejected start
// leaves the end to be checked against the current start. The returned error
// joins every rejection.
func (s *Selector) Apply(agent, start, end string) error {
	var errs []error
	if agent != "" {
		if err := s.SetAgent(agent); err != nil {
			errs = append(errs, err)
		}
	}
	if start != "" {
		if err := s.applyDate("start", start, s.SetStart); err != nil {
			errs = append(errs, err)
		}
	}
	if end != "" {
		if err := s.applyDate("end", end, s.SetEnd); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Selector) applyDate(name, raw string, set func(time.Time) error) error {
	t, err := ParseSelectionDate(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRange, name, err)
	}
	return set(t)
}
