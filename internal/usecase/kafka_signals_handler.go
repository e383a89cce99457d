package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"TradeLens/internal/engine"
	applogger "TradeLens/pkg/logger"
)

// SignalsHandler ingests signal rows pushed over Kafka, so upstream
// pipelines can feed the store without going through the sheets API.
type SignalsHandler struct {
	topic  string
	store  *SignalStore
	logger *applogger.Logger
}

type signalsMessage struct {
	Source  string           `json:"source"`
	Columns []string         `json:"columns,omitempty"`
	Records []map[string]any `json:"records"`
}

// NewSignalsHandler creates the handler for the given topic.
func NewSignalsHandler(topic string, store *SignalStore, logger *applogger.Logger) *SignalsHandler {
	return &SignalsHandler{topic: topic, store: store, logger: logger}
}

// Topic implements kafka.MessageHandler.
func (h *SignalsHandler) Topic() string { return h.topic }

// Handle replaces the source's rows with the message payload. When the
// message carries an explicit column order it is preserved; otherwise the
// header is derived from record key order.
func (h *SignalsHandler) Handle(_ context.Context, data []byte) error {
	var msg signalsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("decode signals message: %w", err)
	}
	if msg.Source == "" {
		return fmt.Errorf("signals message missing source")
	}

	var rs engine.RowSet
	if len(msg.Columns) > 0 {
		rs.Columns = msg.Columns
		for _, rec := range msg.Records {
			row := make(engine.Row, len(msg.Columns))
			for _, col := range msg.Columns {
				row[col] = rec[col]
			}
			rs.Rows = append(rs.Rows, row)
		}
	} else {
		rs = engine.FromRecords(msg.Records)
	}

	h.store.Replace("kafka:"+msg.Source, rs)
	h.logger.Info("signals ingested from kafka",
		applogger.String("source", msg.Source),
		applogger.Int("records", rs.Len()),
	)
	return nil
}
