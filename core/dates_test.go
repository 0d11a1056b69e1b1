package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input any
	}{
		{"date only", "2024-01-15"},
		{"dune timestamp", "2024-01-15 00:00:00.000 UTC"},
		{"dune timestamp with time", "2024-01-15 13:45:10.123 UTC"},
		{"rfc3339", "2024-01-15T13:45:10Z"},
		{"rfc3339 fractional", "2024-01-15T13:45:10.5Z"},
		{"iso without zone", "2024-01-15T13:45:10"},
		{"space separated", "2024-01-15 13:45:10"},
		{"surrounding whitespace", "  2024-01-15  "},
		{"time value", time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_KeepsOwnDay(t *testing.T) {
	// Late evening in a negative offset is still that calendar day
	got, err := ParseDate("2024-01-15T22:00:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []any{"yesterday", "", "2024-13-01", 20240115} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %v", input)
	}
}
