package usecase

import (
	"sync"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
)

// SignalStore is the in-memory cache of synced signal rows, keyed by
// source sheet ID. All reads serve from here; only syncs write.
type SignalStore struct {
	mu       sync.RWMutex
	order    []string
	sets     map[string]engine.RowSet
	alerts   engine.RowSet
	lastSync *time.Time
	status   string
	message  string
}

// NewSignalStore creates an empty store.
func NewSignalStore() *SignalStore {
	return &SignalStore{
		sets:   make(map[string]engine.RowSet),
		status: "never_synced",
	}
}

// Replace swaps in the latest row-set for a source. Source order is
// first-seen, so merged snapshots stay deterministic across syncs.
func (s *SignalStore) Replace(sourceID string, rs engine.RowSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.sets[sourceID]; !seen {
		s.order = append(s.order, sourceID)
	}
	s.sets[sourceID] = rs
}

// ReplaceAlerts swaps in the latest alerts worksheet.
func (s *SignalStore) ReplaceAlerts(rs engine.RowSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = rs
}

// Alerts returns the cached alerts row-set.
func (s *SignalStore) Alerts() engine.RowSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// Snapshot merges all sources into one row-set, in source registration
// order.
func (s *SignalStore) Snapshot() engine.RowSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sets := make([]engine.RowSet, 0, len(s.order))
	for _, id := range s.order {
		sets = append(sets, s.sets[id])
	}
	return engine.Merge(sets...)
}

// SetSyncResult records the outcome of the latest sync attempt.
func (s *SignalStore) SetSyncResult(status, message string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.message = message
	s.lastSync = &at
}

// Status reports sync freshness and the merged record count.
func (s *SignalStore) Status() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, rs := range s.sets {
		total += rs.Len()
	}
	return models.SyncStatus{
		LastSync:     s.lastSync,
		TotalRecords: total,
		Status:       s.status,
		Message:      s.message,
	}
}
