package usecase

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/repository"
	applogger "TradeLens/pkg/logger"
)

// Broadcaster pushes events to connected websocket clients.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// SyncConfig names the sheet sources to pull.
type SyncConfig struct {
	SheetIDs        []string
	WorksheetGID    string
	AlertsWorksheet string
	AutoInterval    time.Duration
}

// SyncService pulls signal rows from every configured sheet into the
// store, then fans the result out to Kafka, ClickHouse, and websockets.
type SyncService struct {
	cfg         SyncConfig
	source      repository.SignalSource
	store       *SignalStore
	publisher   repository.EventPublisher
	archiver    repository.SnapshotArchiver
	metrics     repository.Metrics
	broadcaster Broadcaster
	logger      *applogger.Logger
}

// NewSyncService wires the sync pipeline.
func NewSyncService(
	cfg SyncConfig,
	source repository.SignalSource,
	store *SignalStore,
	publisher repository.EventPublisher,
	archiver repository.SnapshotArchiver,
	metrics repository.Metrics,
	broadcaster Broadcaster,
	logger *applogger.Logger,
) *SyncService {
	return &SyncService{
		cfg:         cfg,
		source:      source,
		store:       store,
		publisher:   publisher,
		archiver:    archiver,
		metrics:     metrics,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// SyncAll refreshes every configured source. A source that fails is
// logged and skipped; the sync succeeds if at least one source produced
// rows.
func (s *SyncService) SyncAll(ctx context.Context) models.SyncStatus {
	start := time.Now()
	total := 0
	failed := 0

	for _, sheetID := range s.cfg.SheetIDs {
		rs, err := s.source.FetchRows(ctx, sheetID, s.cfg.WorksheetGID)
		if err != nil {
			failed++
			s.metrics.RecordError("sync_fetch")
			s.logger.Error("sheet fetch failed",
				applogger.String("sheet_id", sheetID),
				applogger.Error(err),
			)
			continue
		}

		s.store.Replace(sheetID, rs)
		total += rs.Len()
		s.metrics.RecordSync(sheetID, rs.Len())

		if err := s.archiver.ArchiveSnapshot(ctx, sheetID, rs, start); err != nil {
			s.metrics.RecordError("sync_archive")
			s.logger.Error("snapshot archive failed",
				applogger.String("sheet_id", sheetID),
				applogger.Error(err),
			)
		}
		if err := s.publisher.PublishSyncEvent(ctx, models.SyncEvent{
			Source:    sheetID,
			Records:   rs.Len(),
			Timestamp: start,
		}); err != nil {
			s.metrics.RecordError("sync_publish")
			s.logger.Error("sync event publish failed",
				applogger.String("sheet_id", sheetID),
				applogger.Error(err),
			)
		}
	}

	s.syncAlerts(ctx)

	status := "success"
	message := fmt.Sprintf("synced %d records from %d sheets", total, len(s.cfg.SheetIDs)-failed)
	switch {
	case failed == len(s.cfg.SheetIDs):
		status = "error"
		message = "all sheet sources failed"
	case total == 0:
		status = "no_data"
		message = "sheets returned no rows"
	}
	s.store.SetSyncResult(status, message, start)
	s.metrics.RecordLatency("sync_all", time.Since(start).Seconds())

	result := s.store.Status()
	if s.broadcaster != nil {
		s.broadcaster.Broadcast("sync_completed", result)
	}
	s.logger.Info("sync completed",
		applogger.String("status", status),
		applogger.Int("records", total),
		applogger.Duration("took", time.Since(start)),
	)
	return result
}

// syncAlerts refreshes the alerts worksheet from the first sheet.
// Best-effort: the alerts tab may not exist on every source.
func (s *SyncService) syncAlerts(ctx context.Context) {
	if s.cfg.AlertsWorksheet == "" || len(s.cfg.SheetIDs) == 0 {
		return
	}
	rs, err := s.source.FetchWorksheet(ctx, s.cfg.SheetIDs[0], s.cfg.AlertsWorksheet)
	if err != nil {
		s.logger.Warn("alerts worksheet fetch failed", applogger.Error(err))
		return
	}
	s.store.ReplaceAlerts(rs)
}

// StartAuto runs SyncAll on the configured interval until ctx is done.
// No-op when the interval is zero.
func (s *SyncService) StartAuto(ctx context.Context) {
	if s.cfg.AutoInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.cfg.AutoInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SyncAll(ctx)
			}
		}
	}()
}
