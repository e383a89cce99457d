package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
	"TradeLens/internal/service/ratelimit"
	"TradeLens/pkg/cache"
)

func newChatService(t *testing.T, store *SignalStore, extractor *fakeExtractor, cfg ChatConfig) (*ChatService, cache.Service) {
	t.Helper()
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.RateCapacity == 0 {
		cfg.RateCapacity = 100
		cfg.RatePerSec = 100
	}
	mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(10))
	t.Cleanup(func() { _ = mc.Close() })
	return NewChatService(cfg, store, extractor, mc, ratelimit.New(), fakeMetrics{}, testLogger(t)), mc
}

func TestChatFiltersAndAnswers(t *testing.T) {
	store := NewSignalStore()
	store.Replace("s1", testRowSet())
	extractor := &fakeExtractor{
		params: models.FilterParams{
			FilterSpec: engine.FilterSpec{Trend: "uptrend"},
			SortBy:     "adx",
			Limit:      1,
		},
		answer: "AAPL leads the uptrend",
	}
	svc, _ := newChatService(t, store, extractor, ChatConfig{})

	ans, err := svc.Chat(context.Background(), "top uptrend stock by adx", "1.2.3.4")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if ans.Response != "AAPL leads the uptrend" {
		t.Fatalf("unexpected response %q", ans.Response)
	}
	if len(ans.Data) != 1 || ans.Data[0]["Symbol"] != "AAPL" {
		t.Fatalf("unexpected data %+v", ans.Data)
	}
}

func TestChatMemoizesOnQueryAndRowCount(t *testing.T) {
	store := NewSignalStore()
	store.Replace("s1", testRowSet())
	extractor := &fakeExtractor{answer: "cached answer"}
	svc, _ := newChatService(t, store, extractor, ChatConfig{})
	ctx := context.Background()

	if _, err := svc.Chat(ctx, "how is the market", "c1"); err != nil {
		t.Fatalf("first Chat: %v", err)
	}
	if _, err := svc.Chat(ctx, "how is the market", "c1"); err != nil {
		t.Fatalf("second Chat: %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("expected memoized second call, extractor ran %d times", extractor.calls)
	}

	// Data size changed: the memo key must miss.
	store.Replace("s2", engine.RowSet{Columns: []string{"symbol"}, Rows: []engine.Row{{"symbol": "TSLA"}}})
	if _, err := svc.Chat(ctx, "how is the market", "c1"); err != nil {
		t.Fatalf("third Chat: %v", err)
	}
	if extractor.calls != 2 {
		t.Fatalf("expected cache miss after data change, extractor ran %d times", extractor.calls)
	}
}

func TestChatRateLimited(t *testing.T) {
	store := NewSignalStore()
	store.Replace("s1", testRowSet())
	extractor := &fakeExtractor{answer: "a"}
	svc, _ := newChatService(t, store, extractor, ChatConfig{RateCapacity: 1, RatePerSec: 0.0001})
	ctx := context.Background()

	if _, err := svc.Chat(ctx, "q1", "client"); err != nil {
		t.Fatalf("first Chat: %v", err)
	}
	_, err := svc.Chat(ctx, "q2", "client")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestChatExtractorError(t *testing.T) {
	store := NewSignalStore()
	store.Replace("s1", testRowSet())
	extractor := &fakeExtractor{err: errors.New("model unavailable")}
	svc, _ := newChatService(t, store, extractor, ChatConfig{})

	if _, err := svc.Chat(context.Background(), "q", "c"); err == nil {
		t.Fatalf("expected error from extractor")
	}
}

func TestChatDefaultSortIsADX(t *testing.T) {
	store := NewSignalStore()
	store.Replace("s1", testRowSet())
	extractor := &fakeExtractor{} // model returned no sort_by
	svc, _ := newChatService(t, store, extractor, ChatConfig{})

	ans, err := svc.Chat(context.Background(), "show me stocks", "c")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	want := []string{"AAPL", "NVDA", "MSFT"} // ADX 40, 35, 20
	if len(ans.Data) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(ans.Data))
	}
	for i, sym := range want {
		if ans.Data[i]["Symbol"] != sym {
			t.Fatalf("row %d = %v, want %s", i, ans.Data[i]["Symbol"], sym)
		}
	}
}

func TestChatDefaultAnswerAndLimit(t *testing.T) {
	store := NewSignalStore()
	store.Replace("s1", testRowSet())
	extractor := &fakeExtractor{} // empty params, empty answer
	svc, _ := newChatService(t, store, extractor, ChatConfig{})

	ans, err := svc.Chat(context.Background(), "anything", "c")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if ans.Response == "" {
		t.Fatalf("expected fallback response text")
	}
	if len(ans.Data) != 3 {
		t.Fatalf("expected all rows under default limit, got %d", len(ans.Data))
	}
}
