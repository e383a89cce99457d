package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
	"TradeLens/internal/service/ratelimit"
	"TradeLens/internal/usecase"
	"TradeLens/pkg/cache"
	pkghttp "TradeLens/pkg/http"
	applogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	rows engine.RowSet
}

func (s *stubSource) FetchRows(context.Context, string, string) (engine.RowSet, error) {
	return s.rows, nil
}

func (s *stubSource) FetchWorksheet(context.Context, string, string) (engine.RowSet, error) {
	return engine.RowSet{}, nil
}

func (s *stubSource) SheetInfo(_ context.Context, id string) (models.SheetInfo, error) {
	return models.SheetInfo{ID: id, Title: "Signals Book"}, nil
}

type stubPublisher struct{}

func (stubPublisher) PublishSyncEvent(context.Context, models.SyncEvent) error { return nil }
func (stubPublisher) Close() error                                             { return nil }

type stubArchiver struct{}

func (stubArchiver) ArchiveSnapshot(context.Context, string, engine.RowSet, time.Time) error {
	return nil
}
func (stubArchiver) Close() error { return nil }

type stubMetrics struct{}

func (stubMetrics) RecordSync(string, int)        {}
func (stubMetrics) RecordQuery(string)            {}
func (stubMetrics) RecordCacheHit(string, bool)   {}
func (stubMetrics) RecordLLMCall(bool)            {}
func (stubMetrics) RecordError(string)            {}
func (stubMetrics) RecordLatency(string, float64) {}

type stubExtractor struct {
	params models.FilterParams
	answer string
}

func (s *stubExtractor) Extract(context.Context, string, string, int) (models.FilterParams, string, error) {
	return s.params, s.answer, nil
}

func testRows() engine.RowSet {
	return engine.RowSet{
		Columns: []string{"Symbol", "Trend", "Sentiment_Score", "ADX"},
		Rows: []engine.Row{
			{"Symbol": "AAPL", "Trend": "Uptrend", "Sentiment_Score": 0.8, "ADX": 40.0},
			{"Symbol": "MSFT", "Trend": "Downtrend", "Sentiment_Score": -0.2, "ADX": 20.0},
		},
	}
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "console"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	store := usecase.NewSignalStore()
	store.Replace("s1", testRows())

	source := &stubSource{rows: testRows()}
	hub := NewHub(logger)

	syncSvc := usecase.NewSyncService(
		usecase.SyncConfig{SheetIDs: []string{"s1"}, WorksheetGID: "0"},
		source, store, stubPublisher{}, stubArchiver{}, stubMetrics{}, hub, logger,
	)
	querySvc := usecase.NewQueryService(store, source, []string{"s1"}, stubMetrics{}, logger)

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	chatSvc := usecase.NewChatService(
		usecase.ChatConfig{CacheTTL: time.Minute, RateCapacity: 100, RatePerSec: 100},
		store, &stubExtractor{answer: "looks bullish"}, mc, ratelimit.New(), stubMetrics{}, logger,
	)

	e := echo.New()
	NewSignalsHandler(syncSvc, querySvc, chatSvc, hub, logger).RegisterRoutes(e)
	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string) pkghttp.APIResponse {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s: HTTP %d", method, path, rec.Code)
	}
	var resp pkghttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp
}

func TestRootEndpoint(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/", "")
	if resp.Status != http.StatusOK {
		t.Fatalf("unexpected envelope status %d", resp.Status)
	}
}

func TestStocksEndpoint(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/api/stocks?trend=uptrend", "")

	data, _ := json.Marshal(resp.Data)
	var result models.StocksResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected 1 uptrend stock, got %d", result.Total)
	}
}

func TestStocksEndpointRejectsBadSentiment(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/api/stocks?sentiment=sideways", "")
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got %d", resp.Status)
	}
}

func TestTopEndpointDefaults(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/api/top", "")

	data, _ := json.Marshal(resp.Data)
	var result models.StocksResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	// default sort_by=adx, so the stronger ADX leads
	if result.Total != 2 || result.Stocks[0]["Symbol"] != "AAPL" {
		t.Fatalf("unexpected top result %+v", result)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/api/analytics", "")

	data, _ := json.Marshal(resp.Data)
	var sum engine.Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.TotalStocks != 2 || sum.UptrendCount != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestChatEndpoint(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodPost, "/api/chat", `{"message": "how is the market"}`)

	data, _ := json.Marshal(resp.Data)
	var ans models.ChatAnswer
	if err := json.Unmarshal(data, &ans); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if ans.Response != "looks bullish" {
		t.Fatalf("unexpected response %q", ans.Response)
	}
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodPost, "/api/chat", `{"message": ""}`)
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got %d", resp.Status)
	}
}

func TestSyncAndStatusEndpoints(t *testing.T) {
	e := newTestServer(t)

	resp := doRequest(t, e, http.MethodPost, "/api/sync", "")
	data, _ := json.Marshal(resp.Data)
	var status models.SyncStatus
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "success" {
		t.Fatalf("unexpected sync status %+v", status)
	}

	resp = doRequest(t, e, http.MethodGet, "/api/sync-status", "")
	if resp.Status != http.StatusOK {
		t.Fatalf("unexpected envelope status %d", resp.Status)
	}
}

func TestSheetsEndpoint(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/api/sheets", "")

	data, _ := json.Marshal(resp.Data)
	var infos []models.SheetInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		t.Fatalf("decode infos: %v", err)
	}
	if len(infos) != 1 || infos[0].Title != "Signals Book" {
		t.Fatalf("unexpected infos %+v", infos)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/api/insights", "")
	if resp.Status != http.StatusOK {
		t.Fatalf("unexpected envelope status %d", resp.Status)
	}
}

func TestAlertsEndpoint(t *testing.T) {
	e := newTestServer(t)
	resp := doRequest(t, e, http.MethodGet, "/api/alerts", "")

	data, _ := json.Marshal(resp.Data)
	var result models.AlertsResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode alerts: %v", err)
	}
	if result.Alerts == nil {
		t.Fatalf("alerts should be non-nil even when empty")
	}
}
