// Package tracker turns an uploaded table of per-agent work records into a
// filtered, target-annotated report.
package tracker

import (
	"time"
)

// Format is the declared layout of an uploaded file.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatSpreadsheet Format = "xlsx"
)

// Encoding records which text decoding path produced a dataset.
type Encoding string

const (
	EncodingLatin1 Encoding = "iso-8859-1"
	EncodingUTF8   Encoding = "utf-8"
	EncodingNative Encoding = "native" // spreadsheet cells carry their own encoding
)

// Lots is a processed or target count as read from the file. Raw keeps the
// source text so non-numeric cells can be shown back to the user.
type Lots struct {
	Raw   string
	Value float64
	Valid bool
}

// Record is one normalized row. Date is always a valid calendar date at
// UTC midnight.
type Record struct {
	Agent         string
	Date          time.Time
	Queue         string
	ProcessedLots Lots
	TargetLots    Lots
	Reasons       string

	// Columns that did not resolve to a canonical name, keyed by trimmed header.
	Extra map[string]string
}

// Bounds is the inclusive date span covered by a dataset.
type Bounds struct {
	Min time.Time
	Max time.Time
}

// FilterCriteria selects one agent over an inclusive date range.
type FilterCriteria struct {
	Agent string
	Start time.Time
	End   time.Time
}

// Row is a filtered record annotated with the target comparison. Err is set
// (wrapping ErrNonNumericTarget) when the counts could not be compared.
type Row struct {
	Record
	TargetAchieved bool
	Err            error
}

// Status distinguishes an empty selection from a met or missed target.
type Status string

const (
	StatusNoData      Status = "no_data"
	StatusAchieved    Status = "achieved"
	StatusNotAchieved Status = "not_achieved"
)

// Verdict summarizes a filtered view over the whole period.
type Verdict struct {
	// Achieved is the logical AND of every row's TargetAchieved; true for an
	// empty view. Check Status before reporting success.
	Achieved bool
	Status   Status

	Rows      int
	Met       int
	Missed    int
	Invalid   int
	Processed float64
	Target    float64
}
