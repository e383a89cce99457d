package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"TradeLens/internal/engine"
	"TradeLens/pkg/clickhouse"
	"TradeLens/pkg/util"
)

var snapshotSchema = []string{
	`CREATE TABLE IF NOT EXISTS signal_snapshots (
		source      String,
		symbol      String,
		signal_date DateTime,
		synced_at   DateTime,
		row_json    String
	) ENGINE = MergeTree()
	ORDER BY (source, synced_at, symbol)
	TTL synced_at + INTERVAL 90 DAY`,
}

// ClickHouseArchiver persists each synced row-set for historical queries.
type ClickHouseArchiver struct {
	client *clickhouse.Client
}

// NewClickHouseArchiver creates the archiver and ensures the snapshot
// table exists.
func NewClickHouseArchiver(ctx context.Context, client *clickhouse.Client) (*ClickHouseArchiver, error) {
	if err := client.InitSchema(ctx, snapshotSchema); err != nil {
		return nil, err
	}
	return &ClickHouseArchiver{client: client}, nil
}

// ArchiveSnapshot writes one row per instrument. The full source row is
// kept as JSON so schema drift in the sheet never loses data.
func (a *ClickHouseArchiver) ArchiveSnapshot(ctx context.Context, source string, rs engine.RowSet, at time.Time) error {
	if rs.IsEmpty() {
		return nil
	}

	symbolCol, _ := engine.ResolveColumn(rs, engine.SymbolColumns...)
	dateCol, _ := engine.ResolveColumn(rs, engine.DateColumns...)

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO signal_snapshots (source, symbol, signal_date, synced_at, row_json) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rs.Rows {
		symbol := ""
		if symbolCol != "" {
			symbol = fmt.Sprint(row[symbolCol])
		}
		signalDate := at
		if dateCol != "" {
			signalDate = util.ParseTimeDefault(fmt.Sprint(row[dateCol]), at)
		}
		payload, err := json.Marshal(row)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("marshal snapshot row: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, source, symbol, signalDate, at, string(payload)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert snapshot row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (a *ClickHouseArchiver) Close() error {
	return a.client.Close()
}

// NoopArchiver is used when ClickHouse is disabled.
type NoopArchiver struct{}

func (NoopArchiver) ArchiveSnapshot(context.Context, string, engine.RowSet, time.Time) error {
	return nil
}
func (NoopArchiver) Close() error { return nil }
