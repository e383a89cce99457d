package repository

import (
	"context"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
)

// SignalSource pulls tabular signal rows from a remote spreadsheet.
type SignalSource interface {
	FetchRows(ctx context.Context, sheetID, worksheetGID string) (engine.RowSet, error)
	FetchWorksheet(ctx context.Context, sheetID, worksheetName string) (engine.RowSet, error)
	SheetInfo(ctx context.Context, sheetID string) (models.SheetInfo, error)
}

// EventPublisher publishes sync events for downstream consumers.
type EventPublisher interface {
	PublishSyncEvent(ctx context.Context, ev models.SyncEvent) error
	Close() error
}

// SnapshotArchiver persists a synced row-set for historical queries.
type SnapshotArchiver interface {
	ArchiveSnapshot(ctx context.Context, source string, rs engine.RowSet, at time.Time) error
	Close() error
}

// FilterExtractor turns a natural-language query into structured filter
// parameters plus a free-text answer.
type FilterExtractor interface {
	Extract(ctx context.Context, query string, dataSummary string, totalRows int) (models.FilterParams, string, error)
}

// Metrics abstracts operational counters so use cases stay backend-agnostic.
type Metrics interface {
	RecordSync(source string, rows int)
	RecordQuery(endpoint string)
	RecordCacheHit(kind string, hit bool)
	RecordLLMCall(ok bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
