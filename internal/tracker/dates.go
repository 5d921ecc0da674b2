package tracker

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the day-first layout used in source files and for display.
const DateLayout = "02/01/2006"

// Day and month may be unpadded; the year must have four digits.
const dayFirstLayout = "2/1/2006"

const isoLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// maxExcelSerial is 31/12/9999, the last date Excel can represent.
const maxExcelSerial = 2958465

// ParseDate parses a day/month/year date strictly. Surrounding whitespace is
// ignored; anything else that does not match is an error.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dayFirstLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseSelectionDate accepts the formats a user may send when choosing a
// range: ISO (from HTML date inputs) or day/month/year.
func ParseSelectionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	return ParseDate(s)
}

// FormatDate renders a date day-first.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatISODate renders a date for HTML date inputs and query strings.
func FormatISODate(t time.Time) string {
	return t.Format(isoLayout)
}

// parseSpreadsheetDate reads a raw spreadsheet cell: native date cells hold an
// Excel serial number, text cells fall back to ParseDate.
func parseSpreadsheetDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ParseDate(s)
	}
	if math.IsNaN(serial) || serial < 1 || serial >= maxExcelSerial+1 {
		return time.Time{}, fmt.Errorf("parse date %q: serial out of range", s)
	}
	// Round to the minute so float noise cannot push midnight into the
	// previous day.
	serial = math.Round(serial*minutesPerDay) / minutesPerDay
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return dateOnly(t), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
