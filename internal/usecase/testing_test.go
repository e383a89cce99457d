package usecase

import (
	"context"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
	applogger "TradeLens/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testRowSet() engine.RowSet {
	return engine.RowSet{
		Columns: []string{"Symbol", "Trend", "Sentiment_Score", "ADX"},
		Rows: []engine.Row{
			{"Symbol": "AAPL", "Trend": "Uptrend", "Sentiment_Score": 0.8, "ADX": 40.0},
			{"Symbol": "MSFT", "Trend": "Downtrend", "Sentiment_Score": -0.2, "ADX": 20.0},
			{"Symbol": "NVDA", "Trend": "Strong Uptrend", "Sentiment_Score": 0.5, "ADX": 35.0},
		},
	}
}

type fakeSource struct {
	rows      engine.RowSet
	alerts    engine.RowSet
	info      models.SheetInfo
	err       error
	fetchCnt  int
	alertsCnt int
}

func (f *fakeSource) FetchRows(_ context.Context, _, _ string) (engine.RowSet, error) {
	f.fetchCnt++
	return f.rows, f.err
}

func (f *fakeSource) FetchWorksheet(_ context.Context, _, _ string) (engine.RowSet, error) {
	f.alertsCnt++
	return f.alerts, f.err
}

func (f *fakeSource) SheetInfo(_ context.Context, id string) (models.SheetInfo, error) {
	if f.err != nil {
		return models.SheetInfo{}, f.err
	}
	info := f.info
	info.ID = id
	return info, nil
}

type fakePublisher struct {
	events []models.SyncEvent
}

func (f *fakePublisher) PublishSyncEvent(_ context.Context, ev models.SyncEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeArchiver struct {
	snapshots int
}

func (f *fakeArchiver) ArchiveSnapshot(_ context.Context, _ string, _ engine.RowSet, _ time.Time) error {
	f.snapshots++
	return nil
}

func (f *fakeArchiver) Close() error { return nil }

type fakeMetrics struct{}

func (fakeMetrics) RecordSync(string, int)      {}
func (fakeMetrics) RecordQuery(string)          {}
func (fakeMetrics) RecordCacheHit(string, bool) {}
func (fakeMetrics) RecordLLMCall(bool)          {}
func (fakeMetrics) RecordError(string)          {}
func (fakeMetrics) RecordLatency(string, float64) {
}

type fakeExtractor struct {
	params models.FilterParams
	answer string
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, _, _ string, _ int) (models.FilterParams, string, error) {
	f.calls++
	return f.params, f.answer, f.err
}
