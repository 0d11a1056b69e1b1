package outwriter

import (
	"io"

	"github.com/huangsam/launchpad/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writePivotTable renders the pivot as a markdown or text table.
func writePivotTable(w io.Writer, table *schema.PivotTable, markdown bool) error {
	t := newTable(w, markdown)

	// 1. Define Headers
	t.Header(table.Header())

	// 2. Numbers read best right-aligned
	t.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Render
	if err := t.Bulk(table.Records()); err != nil {
		return err
	}
	return t.Render()
}

// writePivotCSV writes the pivot with one CSV row per date.
func writePivotCSV(w io.Writer, table *schema.PivotTable) error {
	return writeCSVWithHeader(w, table.Header(), table.Records())
}

// jsonPivotRow is the JSON shape of one date. Missing values are null.
type jsonPivotRow struct {
	Date   string              `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// jsonPivot is the JSON shape of a pivot table.
type jsonPivot struct {
	Index   string         `json:"index"`
	Metric  string         `json:"metric"`
	Columns []string       `json:"columns"`
	Rows    []jsonPivotRow `json:"rows"`
}

// writePivotJSON writes the pivot as an indented JSON document.
func writePivotJSON(w io.Writer, table *schema.PivotTable) error {
	out := jsonPivot{
		Index:   table.IndexLabel,
		Metric:  table.Metric,
		Columns: table.Columns,
		Rows:    make([]jsonPivotRow, 0, len(table.Rows)),
	}
	for _, r := range table.Rows {
		row := jsonPivotRow{
			Date:   schema.FormatDate(r.Date),
			Values: make(map[string]*float64, len(table.Columns)),
		}
		for j, col := range table.Columns {
			if c := r.Cells[j]; c.Valid {
				v := c.Value
				row.Values[col] = &v
			} else {
				row.Values[col] = nil
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return writeJSON(w, out)
}
