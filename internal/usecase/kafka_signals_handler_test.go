package usecase

import (
	"context"
	"testing"
)

func TestSignalsHandlerWithColumns(t *testing.T) {
	store := NewSignalStore()
	h := NewSignalsHandler("signals", store, testLogger(t))

	if h.Topic() != "signals" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}

	payload := []byte(`{
		"source": "pipeline-a",
		"columns": ["Symbol", "Trend"],
		"records": [
			{"Symbol": "AAPL", "Trend": "Uptrend"},
			{"Symbol": "MSFT", "Trend": "Downtrend"}
		]
	}`)
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	snap := store.Snapshot()
	if snap.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", snap.Len())
	}
	if len(snap.Columns) != 2 || snap.Columns[0] != "Symbol" {
		t.Fatalf("column order not preserved: %v", snap.Columns)
	}
}

func TestSignalsHandlerWithoutColumns(t *testing.T) {
	store := NewSignalStore()
	h := NewSignalsHandler("signals", store, testLogger(t))

	payload := []byte(`{"source": "pipeline-b", "records": [{"symbol": "NVDA"}]}`)
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if store.Snapshot().Len() != 1 {
		t.Fatalf("row not ingested")
	}
}

func TestSignalsHandlerRejectsBadPayload(t *testing.T) {
	h := NewSignalsHandler("signals", NewSignalStore(), testLogger(t))

	if err := h.Handle(context.Background(), []byte(`not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
	if err := h.Handle(context.Background(), []byte(`{"records": []}`)); err == nil {
		t.Fatalf("expected missing-source error")
	}
}
