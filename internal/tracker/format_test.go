package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Agent name"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Format
		ok   bool
	}{
		{"agents.csv", FormatCSV, true},
		{"AGENTS.CSV", FormatCSV, true},
		{"export.txt", FormatCSV, true},
		{"rota.xlsx", FormatSpreadsheet, true},
		{"report.pdf", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatFromFilename(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("ods")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestDetectFormat(t *testing.T) {
	f, ok := DetectFormat([]byte(sampleCSV))
	assert.True(t, ok)
	assert.Equal(t, FormatCSV, f)

	f, ok = DetectFormat(workbookBytes(t))
	assert.True(t, ok)
	assert.Equal(t, FormatSpreadsheet, f)

	_, ok = DetectFormat([]byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"))
	assert.False(t, ok)
}

func TestResolveFormat(t *testing.T) {
	xlsx := workbookBytes(t)

	tests := []struct {
		name     string
		declared string
		fileName string
		data     []byte
		want     Format
		wantErr  bool
	}{
		{"declared wins", "csv", "rota.xlsx", xlsx, FormatCSV, false},
		{"extension", "", "rota.xlsx", []byte(sampleCSV), FormatSpreadsheet, false},
		{"sniffed text", "", "rota.dat", []byte(sampleCSV), FormatCSV, false},
		{"sniffed workbook", "", "download", xlsx, FormatSpreadsheet, false},
		{"bad declaration", "ods", "rota.csv", []byte(sampleCSV), "", true},
		{"unknown content", "", "rota.pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFormat(tt.declared, tt.fileName, tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnreadable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
