package core

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/launchpad/schema"
)

// percentPrecision is the number of decimals kept by NormalizePercent.
const percentPrecision = 3

// pivotKey identifies a single cell of the pivot.
type pivotKey struct {
	date     time.Time
	platform string
}

// BuildPivot reshapes rows into a date-by-platform table sorted by date descending.
// Columns are the distinct platforms in ascending order. Each (date, platform) pair
// must be unique.
func BuildPivot(rows schema.ResultSet, spec schema.ToolSpec) (*schema.PivotTable, error) {
	table := &schema.PivotTable{
		IndexLabel: spec.IndexLabel,
		Metric:     spec.MetricColumn,
		Columns:    []string{},
		Rows:       []schema.PivotRow{},
	}
	if table.IndexLabel == "" {
		table.IndexLabel = spec.DateColumn
	}
	if len(rows) == 0 {
		return table, nil
	}

	for _, col := range []string{spec.DateColumn, spec.PlatformColumn, spec.MetricColumn} {
		if !hasColumn(rows, col) {
			return nil, newReportError(schema.MissingColumnError, "column '%s' not found in query results", col)
		}
	}

	cells := make(map[pivotKey]schema.Cell, len(rows))
	dateSet := make(map[time.Time]struct{})
	platformSet := make(map[string]struct{})

	for i, row := range rows {
		rawDate, ok := row[spec.DateColumn]
		if !ok || rawDate == nil {
			return nil, newReportError(schema.MissingColumnError, "row %d has no value for column '%s'", i, spec.DateColumn)
		}
		date, err := ParseDate(rawDate)
		if err != nil {
			return nil, newReportError(schema.InvalidValueError, "row %d column '%s': %v", i, spec.DateColumn, err)
		}

		rawPlatform, ok := row[spec.PlatformColumn]
		if !ok || rawPlatform == nil {
			return nil, newReportError(schema.MissingColumnError, "row %d has no value for column '%s'", i, spec.PlatformColumn)
		}
		platform := fmt.Sprint(rawPlatform)

		cell, err := parseMetric(row[spec.MetricColumn])
		if err != nil {
			return nil, newReportError(schema.InvalidValueError, "row %d column '%s': %v", i, spec.MetricColumn, err)
		}

		key := pivotKey{date: date, platform: platform}
		if _, dup := cells[key]; dup {
			return nil, newReportError(schema.DuplicateKeyError,
				"index contains duplicate entries, cannot reshape: %s=%s, %s=%s",
				spec.DateColumn, schema.FormatDate(date), spec.PlatformColumn, platform)
		}
		cells[key] = cell
		dateSet[date] = struct{}{}
		platformSet[platform] = struct{}{}
	}

	for p := range platformSet {
		table.Columns = append(table.Columns, p)
	}
	sort.Strings(table.Columns)

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	for _, d := range dates {
		pr := schema.PivotRow{Date: d, Cells: make([]schema.Cell, len(table.Columns))}
		for j, p := range table.Columns {
			pr.Cells[j] = cells[pivotKey{date: d, platform: p}]
		}
		table.Rows = append(table.Rows, pr)
	}
	return table, nil
}

// NormalizePercent divides every cell by its row's total, rounded to three decimals.
// Missing cells stay missing; a row whose total is zero becomes entirely missing.
func NormalizePercent(table *schema.PivotTable) {
	scale := math.Pow10(percentPrecision)
	for i := range table.Rows {
		cells := table.Rows[i].Cells
		var sum float64
		for _, c := range cells {
			if c.Valid {
				sum += c.Value
			}
		}
		for j := range cells {
			if !cells[j].Valid {
				continue
			}
			if sum == 0 {
				cells[j] = schema.Cell{}
				continue
			}
			cells[j].Value = math.Round(cells[j].Value/sum*scale) / scale
		}
	}
}

// hasColumn reports whether any row carries the column.
func hasColumn(rows schema.ResultSet, col string) bool {
	for _, row := range rows {
		if _, ok := row[col]; ok {
			return true
		}
	}
	return false
}

// parseMetric converts an upstream scalar into a cell. Null and blank values are missing.
func parseMetric(v any) (schema.Cell, error) {
	var f float64
	switch val := v.(type) {
	case nil:
		return schema.Cell{}, nil
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return schema.Cell{}, fmt.Errorf("%q is not numeric", val.String())
		}
		f = n
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return schema.Cell{}, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return schema.Cell{}, fmt.Errorf("%q is not numeric", val)
		}
		f = n
	default:
		return schema.Cell{}, fmt.Errorf("%v (%T) is not numeric", v, v)
	}
	if math.IsNaN(f) {
		return schema.Cell{}, nil
	}
	return schema.Cell{Value: f, Valid: true}, nil
}
