package schema

import "time"

// HistoryStatus represents the status of the invocation history store.
type HistoryStatus struct {
	Backend          string         `json:"backend"`
	Connected        bool           `json:"connected"`
	TotalRecords     int            `json:"total_records"`
	ErrorRecords     int            `json:"error_records"`
	LastRecordTime   time.Time      `json:"last_record_time"`
	OldestRecordTime time.Time      `json:"oldest_record_time"`
	PerTool          map[string]int `json:"per_tool"`
}
