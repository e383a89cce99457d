package models

import (
	"time"

	"TradeLens/internal/engine"
)

// SyncStatus reports the outcome and freshness of sheet synchronization.
type SyncStatus struct {
	LastSync     *time.Time `json:"last_sync,omitempty"`
	TotalRecords int        `json:"total_records"`
	Status       string     `json:"status"` // success, error, no_data
	Message      string     `json:"message,omitempty"`
}

// SheetInfo is spreadsheet metadata for the configured sources list.
type SheetInfo struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Worksheets []string `json:"worksheets,omitempty"`
}

// FilterParams is the structured filter specification the language model
// extracts from a chat query. SortBy and Limit shape the result set after
// the FilterSpec predicates have been applied.
type FilterParams struct {
	engine.FilterSpec
	SortBy string `json:"sort_by,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// IsEmpty reports whether nothing was extracted at all.
func (p FilterParams) IsEmpty() bool {
	return p.FilterSpec.IsEmpty() && p.SortBy == "" && p.Limit == 0
}

// ChatAnswer pairs the model's reply with the rows backing it.
type ChatAnswer struct {
	Response string       `json:"response"`
	Data     []engine.Row `json:"data,omitempty"`
}

// StocksResult is the filtered listing payload.
type StocksResult struct {
	Stocks         []engine.Row      `json:"stocks"`
	Total          int               `json:"total"`
	FiltersApplied engine.FilterSpec `json:"filters_applied"`
	Message        string            `json:"message,omitempty"`
}

// AlertsResult carries the TradingView alerts worksheet verbatim.
type AlertsResult struct {
	Alerts  []engine.Row `json:"alerts"`
	Total   int          `json:"total"`
	Message string       `json:"message,omitempty"`
}

// SyncEvent is published to the events topic after each completed sync.
type SyncEvent struct {
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	Timestamp time.Time `json:"timestamp"`
}
