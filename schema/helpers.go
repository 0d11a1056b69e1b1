package schema

import (
	"strconv"
	"time"
)

// DateFormat is the calendar date layout used in every rendered table.
const DateFormat = time.DateOnly

// FormatDate renders a pivot index value.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatCell renders a cell with the shortest decimal form, or "" when missing.
func FormatCell(c Cell) string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

// Header returns the rendered header row of a pivot table.
func (p *PivotTable) Header() []string {
	header := make([]string, 0, len(p.Columns)+1)
	header = append(header, p.IndexLabel)
	header = append(header, p.Columns...)
	return header
}

// Records returns every data row of a pivot table as formatted strings.
func (p *PivotTable) Records() [][]string {
	records := make([][]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		rec := make([]string, 0, len(r.Cells)+1)
		rec = append(rec, FormatDate(r.Date))
		for _, c := range r.Cells {
			rec = append(rec, FormatCell(c))
		}
		records = append(records, rec)
	}
	return records
}
