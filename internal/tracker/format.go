package tracker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FormatFromFilename infers the upload format from its extension.
func FormatFromFilename(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, true
	case ".xlsx", ".xlsm":
		return FormatSpreadsheet, true
	default:
		return "", false
	}
}

// ParseFormat validates a declared format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatSpreadsheet:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q", ErrUnreadable, s)
	}
}

// DetectFormat sniffs file content: an OOXML workbook is a spreadsheet, any
// text is read as CSV.
func DetectFormat(data []byte) (Format, bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		switch {
		case m.Is(xlsxMIME):
			return FormatSpreadsheet, true
		case m.Is("text/plain"):
			return FormatCSV, true
		}
	}
	return "", false
}

// ResolveFormat picks the format of an upload: an explicit declaration wins,
// then the file extension, then the content.
func ResolveFormat(declared, fileName string, data []byte) (Format, error) {
	if declared != "" {
		return ParseFormat(declared)
	}
	if f, ok := FormatFromFilename(fileName); ok {
		return f, nil
	}
	if f, ok := DetectFormat(data); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot tell the format of %q", ErrUnreadable, fileName)
}
