package usecase

import (
	"context"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/repository"
	"TradeLens/internal/engine"
	applogger "TradeLens/pkg/logger"
)

// QueryService answers read-only queries against the synced store.
type QueryService struct {
	store    *SignalStore
	source   repository.SignalSource
	sheetIDs []string
	metrics  repository.Metrics
	logger   *applogger.Logger
}

// NewQueryService creates the query service.
func NewQueryService(
	store *SignalStore,
	source repository.SignalSource,
	sheetIDs []string,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *QueryService {
	return &QueryService{
		store:    store,
		source:   source,
		sheetIDs: sheetIDs,
		metrics:  metrics,
		logger:   logger,
	}
}

// Stocks returns the merged rows matching spec, optionally ranked and
// truncated. Rows are sanitized so NaN/Inf never reach JSON encoding.
func (q *QueryService) Stocks(_ context.Context, spec engine.FilterSpec, sortBy string, limit int) models.StocksResult {
	q.metrics.RecordQuery("stocks")

	rs := engine.Apply(q.store.Snapshot(), spec)
	if sortBy != "" {
		rs = engine.TopN(rs, sortBy, limitOrAll(limit, rs.Len()))
	} else if limit > 0 && limit < rs.Len() {
		rs = engine.TopN(rs, "", limit)
	}
	rs = engine.Sanitize(rs)

	result := models.StocksResult{
		Stocks:         rs.Rows,
		Total:          rs.Len(),
		FiltersApplied: spec,
	}
	if result.Stocks == nil {
		result.Stocks = []engine.Row{}
	}
	if result.Total == 0 {
		result.Message = "no stocks match the given filters"
	}
	return result
}

// Analytics summarizes the full merged snapshot.
func (q *QueryService) Analytics(_ context.Context) engine.Summary {
	q.metrics.RecordQuery("analytics")
	return engine.Summarize(q.store.Snapshot())
}

// Insights renders the summary as a compact set of human-readable lines.
func (q *QueryService) Insights(ctx context.Context) []string {
	q.metrics.RecordQuery("insights")
	return engine.Insights(engine.Summarize(q.store.Snapshot()))
}

// Alerts returns the cached alerts worksheet.
func (q *QueryService) Alerts(_ context.Context) models.AlertsResult {
	q.metrics.RecordQuery("alerts")

	rs := engine.Sanitize(q.store.Alerts())
	result := models.AlertsResult{Alerts: rs.Rows, Total: rs.Len()}
	if result.Alerts == nil {
		result.Alerts = []engine.Row{}
	}
	if result.Total == 0 {
		result.Message = "no alerts available; run a sync first"
	}
	return result
}

// Sheets lists metadata for every configured source.
func (q *QueryService) Sheets(ctx context.Context) []models.SheetInfo {
	q.metrics.RecordQuery("sheets")

	infos := make([]models.SheetInfo, 0, len(q.sheetIDs))
	for _, id := range q.sheetIDs {
		info, err := q.source.SheetInfo(ctx, id)
		if err != nil {
			q.logger.Warn("sheet info failed",
				applogger.String("sheet_id", id),
				applogger.Error(err),
			)
			info = models.SheetInfo{ID: id}
		}
		infos = append(infos, info)
	}
	return infos
}

// SyncStatus reports store freshness.
func (q *QueryService) SyncStatus(_ context.Context) models.SyncStatus {
	return q.store.Status()
}

func limitOrAll(limit, total int) int {
	if limit <= 0 || limit > total {
		return total
	}
	return limit
}
