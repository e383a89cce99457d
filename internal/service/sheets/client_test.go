package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRowSetFromValues(t *testing.T) {
	rs := rowSetFromValues([][]any{
		{"Symbol", "Trend", "ADX "},
		{"AAPL", "Uptrend", 32.5},
		{"MSFT", "Downtrend"},
	})

	if len(rs.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %v", rs.Columns)
	}
	if rs.Columns[2] != "ADX " {
		t.Fatalf("header cell should keep stray whitespace, got %q", rs.Columns[2])
	}
	if rs.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", rs.Len())
	}
	if rs.Rows[0]["ADX "] != 32.5 {
		t.Fatalf("numeric cell lost: %v", rs.Rows[0]["ADX "])
	}
	if rs.Rows[1]["ADX "] != "" {
		t.Fatalf("short row should be padded with empty string, got %v", rs.Rows[1]["ADX "])
	}
}

func TestRowSetFromValuesEmpty(t *testing.T) {
	rs := rowSetFromValues(nil)
	if !rs.IsEmpty() || len(rs.Columns) != 0 {
		t.Fatalf("expected empty row-set, got %+v", rs)
	}
}

func TestFetchWorksheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/values/Signals") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("api key not sent")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range": "Signals!A1:C3",
			"values": [][]any{
				{"symbol", "trend"},
				{"AAPL", "Strong Uptrend"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", 5*time.Second, WithBaseURL(srv.URL))
	rs, err := c.FetchWorksheet(context.Background(), "sheet-1", "Signals")
	if err != nil {
		t.Fatalf("FetchWorksheet: %v", err)
	}
	if rs.Len() != 1 || rs.Rows[0]["symbol"] != "AAPL" {
		t.Fatalf("unexpected rows %+v", rs.Rows)
	}
}

func TestFetchRowsResolvesGID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/values/") {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"values": [][]any{{"symbol"}, {"NVDA"}},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"properties": map[string]any{"title": "Signals Book"},
			"sheets": []map[string]any{
				{"properties": map[string]any{"sheetId": 0, "title": "Main"}},
				{"properties": map[string]any{"sheetId": 123, "title": "Signals"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("k", 5*time.Second, WithBaseURL(srv.URL))
	rs, err := c.FetchRows(context.Background(), "sheet-1", "123")
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if rs.Len() != 1 || rs.Rows[0]["symbol"] != "NVDA" {
		t.Fatalf("unexpected rows %+v", rs.Rows)
	}

	if _, err := c.FetchRows(context.Background(), "sheet-1", "999"); err == nil {
		t.Fatalf("expected error for unknown gid")
	}
}

func TestSheetInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"properties": map[string]any{"title": "Signals Book"},
			"sheets": []map[string]any{
				{"properties": map[string]any{"sheetId": 0, "title": "Main"}},
				{"properties": map[string]any{"sheetId": 1, "title": "TradingView_Alerts"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("k", 5*time.Second, WithBaseURL(srv.URL))
	info, err := c.SheetInfo(context.Background(), "sheet-1")
	if err != nil {
		t.Fatalf("SheetInfo: %v", err)
	}
	if info.Title != "Signals Book" || len(info.Worksheets) != 2 {
		t.Fatalf("unexpected info %+v", info)
	}
}
