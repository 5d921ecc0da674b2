package tracker

import "errors"

// Ingest failures. Callers match with errors.Is; the returned errors wrap
// these with the offending detail.
var (
	ErrUnreadable    = errors.New("file could not be read")
	ErrMissingColumn = errors.New("required column missing")
	ErrEmpty         = errors.New("no valid dates found")
)

// Selection and filter failures.
var (
	ErrInvalidRange     = errors.New("invalid date range")
	ErrUnknownAgent     = errors.New("unknown agent")
	ErrNonNumericTarget = errors.New("processed or target lots not numeric")
)
