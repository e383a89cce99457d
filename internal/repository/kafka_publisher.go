package repository

import (
	"context"

	"TradeLens/internal/domain/models"
	"TradeLens/pkg/kafka"
)

// KafkaPublisher publishes sync events to the events topic. It also
// satisfies the logger's Publisher interface so aggregated error batches
// ride the same producer.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaPublisher wraps a producer with the configured events topic.
func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishSyncEvent(ctx context.Context, ev models.SyncEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Source), ev)
}

// PublishMessage implements logger.Publisher.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishSyncEvent(context.Context, models.SyncEvent) error { return nil }
func (NoopPublisher) Close() error                                             { return nil }
