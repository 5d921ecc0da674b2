package tracker

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Ingest parses an uploaded file into a Dataset sorted by date. Rows whose
// date does not parse are dropped and counted (see Dataset.Dropped).
func Ingest(data []byte, format Format) (*Dataset, error) {
	switch format {
	case FormatCSV:
		return ingestCSV(data)
	case FormatSpreadsheet:
		return ingestSpreadsheet(data)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrUnreadable, format)
	}
}

func ingestCSV(data []byte) (*Dataset, error) {
	text, enc, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file has no header row", ErrUnreadable)
	}

	// Only the ISO-8859-1 path can produce mojibake worth repairing.
	return buildDataset(rows, builder{
		format:    FormatCSV,
		encoding:  enc,
		parseDate: ParseDate,
		repair:    enc == EncodingLatin1,
	})
}

func ingestSpreadsheet(data []byte) (*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadable, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrUnreadable, sheets[0])
	}

	return buildDataset(rows, builder{
		format:    FormatSpreadsheet,
		encoding:  EncodingNative,
		parseDate: parseSpreadsheetDate,
	})
}

type builder struct {
	format    Format
	encoding  Encoding
	parseDate func(string) (time.Time, error)
	repair    bool
}

// buildDataset maps the header row, normalizes every data row and sorts the
// survivors by date.
func buildDataset(rows [][]string, b builder) (*Dataset, error) {
	mapping, err := MapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	dropped := 0
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		date, err := b.parseDate(mapping.cell(row, ColDate))
		if err != nil {
			dropped++
			continue
		}
		records = append(records, normalizeRecord(row, mapping, date, b.repair))
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w (%d rows skipped)", ErrEmpty, dropped)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return newDataset(records, mapping.Headers, dropped, b.format, b.encoding), nil
}

func normalizeRecord(row []string, mapping *ColumnMapping, date time.Time, repair bool) Record {
	rec := Record{
		Agent:         strings.TrimSpace(mapping.cell(row, ColAgentName)),
		Date:          date,
		Queue:         strings.TrimSpace(mapping.cell(row, ColQueue)),
		ProcessedLots: ParseLots(mapping.cell(row, ColProcessedLots)),
		TargetLots:    ParseLots(mapping.cell(row, ColTargetLots)),
		Reasons:       mapping.cell(row, ColReasons),
	}
	if repair {
		rec.Reasons = RepairText(rec.Reasons)
	}

	for i, name := range mapping.Extra {
		if i >= len(row) {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string, len(mapping.Extra))
		}
		rec.Extra[name] = row[i]
	}
	return rec
}

// ParseLots reads a lot count. Empty, non-numeric, NaN and infinite values
// produce an invalid Lots that keeps the raw text.
func ParseLots(raw string) Lots {
	s := strings.TrimSpace(raw)
	l := Lots{Raw: s}
	if s == "" {
		return l
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return l
	}
	l.Value, l.Valid = v, true
	return l
}

// String renders the parsed value when valid, otherwise the raw text.
func (l Lots) String() string {
	if !l.Valid {
		return l.Raw
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func missingColumn(col string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, col)
}
