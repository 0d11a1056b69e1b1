package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"integer", Cell{Value: 10, Valid: true}, "10"},
		{"fraction", Cell{Value: 0.25, Valid: true}, "0.25"},
		{"rounded", Cell{Value: 0.333, Valid: true}, "0.333"},
		{"zero", Cell{Value: 0, Valid: true}, "0"},
		{"missing", Cell{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.cell))
		})
	}
}

func TestPivotTableHeaderAndRecords(t *testing.T) {
	p := &PivotTable{
		IndexLabel: "date",
		Columns:    []string{"A", "B"},
		Rows: []PivotRow{
			{
				Date:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Cells: []Cell{{Value: 3, Valid: true}, {}},
			},
			{
				Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Cells: []Cell{{Value: 10, Valid: true}, {Value: 30, Valid: true}},
			},
		},
	}

	assert.Equal(t, []string{"date", "A", "B"}, p.Header())
	assert.Equal(t, [][]string{
		{"2024-01-02", "3", ""},
		{"2024-01-01", "10", "30"},
	}, p.Records())
}

func TestReportResultText(t *testing.T) {
	ok := ReportResult{Markdown: "| date |"}
	assert.True(t, ok.OK())
	assert.Equal(t, "| date |", ok.Text())

	failed := ReportResult{Err: &ReportError{Kind: DuplicateKeyError, Message: "index contains duplicate entries"}}
	assert.False(t, failed.OK())
	assert.Equal(t, "index contains duplicate entries", failed.Text())
}
