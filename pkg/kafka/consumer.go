package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageHandler handles messages from a specific topic.
type MessageHandler interface {
	Topic() string
	Handle(ctx context.Context, data []byte) error
}

// Consumer runs one reader goroutine per registered topic handler.
// Handler errors are retried with jittered backoff before the offset is
// committed and the message skipped.
type Consumer struct {
	cfg      *ConsumerConfig
	readers  map[string]*kafka.Reader
	handlers map[string]MessageHandler
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewConsumer creates a Kafka consumer.
func NewConsumer(opts ...ConsumerOption) (*Consumer, error) {
	cfg := &ConsumerConfig{
		StartOffset: "latest",
		RetryMax:    3,
		BackoffMin:  200 * time.Millisecond,
		BackoffMax:  5 * time.Second,
		MinBytes:    1,
		MaxBytes:    10 << 20,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("group id is required")
	}

	return &Consumer{
		cfg:      cfg,
		readers:  make(map[string]*kafka.Reader),
		handlers: make(map[string]MessageHandler),
	}, nil
}

// RegisterHandler registers a handler for its topic. Must be called
// before Start.
func (c *Consumer) RegisterHandler(h MessageHandler) error {
	topic := h.Topic()
	if _, exists := c.handlers[topic]; exists {
		return fmt.Errorf("handler already registered for topic %s", topic)
	}
	c.handlers[topic] = h
	return nil
}

// Start begins consuming. It returns immediately; readers run until Stop.
func (c *Consumer) Start(ctx context.Context) error {
	if len(c.handlers) == 0 {
		return fmt.Errorf("no handlers registered")
	}

	ctx, c.cancel = context.WithCancel(ctx)

	startOffset := kafka.LastOffset
	if c.cfg.StartOffset == "earliest" {
		startOffset = kafka.FirstOffset
	}

	for topic, handler := range c.handlers {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:     c.cfg.Brokers,
			GroupID:     c.cfg.GroupID,
			Topic:       topic,
			StartOffset: startOffset,
			MinBytes:    c.cfg.MinBytes,
			MaxBytes:    c.cfg.MaxBytes,
		})
		c.readers[topic] = reader

		c.wg.Add(1)
		go c.consumeLoop(ctx, reader, handler)
	}
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, reader *kafka.Reader, handler MessageHandler) {
	defer c.wg.Done()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			continue
		}

		c.handleWithRetry(ctx, handler, msg.Value)
		_ = reader.CommitMessages(ctx, msg)
	}
}

func (c *Consumer) handleWithRetry(ctx context.Context, handler MessageHandler, data []byte) {
	var err error
	for attempt := 0; attempt <= c.cfg.RetryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoff(attempt)):
			}
		}
		if err = handler.Handle(ctx, data); err == nil {
			return
		}
	}
}

func (c *Consumer) backoff(attempt int) time.Duration {
	d := c.cfg.BackoffMin << uint(attempt-1)
	if d > c.cfg.BackoffMax {
		d = c.cfg.BackoffMax
	}
	jitter := time.Duration(rand.Int63n(int64(d)/2 + 1))
	return d/2 + jitter
}

// Stop shuts down all readers and waits for in-flight handling.
func (c *Consumer) Stop() error {
	c.stopOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		for _, reader := range c.readers {
			_ = reader.Close()
		}
		c.wg.Wait()
	})
	return nil
}
