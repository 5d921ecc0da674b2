package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalColumn(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Agent name", ColAgentName, true},
		{"Agent nam", ColAgentName, true},
		{"  Agent nam  ", ColAgentName, true},
		{"AGENT NAME", ColAgentName, true},
		{"Date ", ColDate, true},
		{"Proccessed Lots", ColProcessedLots, true},
		{"Target Lot", ColTargetLots, true},
		{"Reason", ColReasons, true},
		{" Shift ", "Shift", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := CanonicalColumn(tt.header)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestColumnAliasesResolveToCanonicalNames(t *testing.T) {
	canonical := map[string]bool{
		ColAgentName: true, ColDate: true, ColQueue: true,
		ColProcessedLots: true, ColTargetLots: true, ColReasons: true,
	}
	for alias, col := range columnAliases {
		assert.True(t, canonical[col], "alias %q maps to non-canonical %q", alias, col)
	}
	for col := range canonical {
		got, ok := CanonicalColumn(col)
		assert.True(t, ok)
		assert.Equal(t, col, got)
	}
}

func TestMapColumns(t *testing.T) {
	m, err := MapColumns([]string{"Agent nam", " Date", "Processed Lots", "Target Lots", "Agent", "Notes"})
	require.NoError(t, err)

	assert.Equal(t, []string{ColAgentName, ColDate, ColProcessedLots, ColTargetLots, ColAgentName, "Notes"}, m.Headers)
	assert.Equal(t, 0, m.Index[ColAgentName], "first matching header wins")
	assert.Equal(t, map[int]string{4: ColAgentName, 5: "Notes"}, m.Extra)

	assert.Equal(t, "x", m.cell([]string{"x"}, ColAgentName))
	assert.Equal(t, "", m.cell([]string{"x"}, ColTargetLots))
	assert.Equal(t, "", m.cell([]string{"x"}, ColQueue))
}

func TestMapColumnsMissing(t *testing.T) {
	_, err := MapColumns([]string{"Agent name", "Date", "Processed Lots"})
	assert.ErrorIs(t, err, ErrMissingColumn)
}
