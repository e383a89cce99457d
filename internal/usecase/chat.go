package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/repository"
	"TradeLens/internal/engine"
	"TradeLens/internal/service/ratelimit"
	"TradeLens/pkg/cache"
	applogger "TradeLens/pkg/logger"
)

// ErrRateLimited is returned when a client exceeds the chat token bucket.
var ErrRateLimited = errors.New("chat rate limit exceeded")

const (
	defaultChatLimit = 10
	defaultChatSort  = "adx"
)

// ChatConfig tunes memoization and throttling.
type ChatConfig struct {
	CacheTTL     time.Duration
	RateCapacity float64
	RatePerSec   float64
}

// ChatService answers natural-language questions about the synced rows.
// Answers are memoized on (query, row count) so repeated questions skip
// the model while the data is unchanged.
type ChatService struct {
	cfg       ChatConfig
	store     *SignalStore
	extractor repository.FilterExtractor
	cache     cache.Service
	limiter   *ratelimit.Limiter
	metrics   repository.Metrics
	logger    *applogger.Logger
}

// NewChatService wires the chat pipeline.
func NewChatService(
	cfg ChatConfig,
	store *SignalStore,
	extractor repository.FilterExtractor,
	cacheSvc cache.Service,
	limiter *ratelimit.Limiter,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *ChatService {
	return &ChatService{
		cfg:       cfg,
		store:     store,
		extractor: extractor,
		cache:     cacheSvc,
		limiter:   limiter,
		metrics:   metrics,
		logger:    logger,
	}
}

// Chat runs one query: cache lookup, rate limit, model extraction, then
// filtering and ranking of the matching rows. clientKey identifies the
// caller for throttling (typically the remote IP).
func (c *ChatService) Chat(ctx context.Context, query, clientKey string) (models.ChatAnswer, error) {
	start := time.Now()
	snapshot := c.store.Snapshot()

	cacheKey := cache.GenerateKey("chat",
		cache.HashKey(fmt.Sprintf("%s:%d", strings.TrimSpace(query), snapshot.Len())))

	var cached models.ChatAnswer
	if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
		c.metrics.RecordCacheHit("chat", true)
		return cached, nil
	}
	c.metrics.RecordCacheHit("chat", false)

	if !c.limiter.Allow("chat:"+clientKey, c.cfg.RateCapacity, c.cfg.RatePerSec) {
		c.metrics.RecordError("chat_rate_limited")
		return models.ChatAnswer{}, ErrRateLimited
	}

	dataSummary := strings.Join(engine.Insights(engine.Summarize(snapshot)), " | ")

	params, answer, err := c.extractor.Extract(ctx, query, dataSummary, snapshot.Len())
	if err != nil {
		c.metrics.RecordLLMCall(false)
		c.metrics.RecordError("llm")
		return models.ChatAnswer{}, fmt.Errorf("extract filters: %w", err)
	}
	c.metrics.RecordLLMCall(true)

	rs := engine.Apply(snapshot, params.FilterSpec)
	limit := params.Limit
	if limit <= 0 {
		limit = defaultChatLimit
	}
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = defaultChatSort
	}
	rs = engine.TopN(rs, sortBy, limit)
	rs = engine.Sanitize(rs)

	if answer == "" {
		answer = fmt.Sprintf("Found %d matching stocks.", rs.Len())
	}
	result := models.ChatAnswer{Response: answer, Data: rs.Rows}

	if err := c.cache.Set(ctx, cacheKey, result, c.cfg.CacheTTL); err != nil {
		c.logger.Warn("chat cache set failed", applogger.Error(err))
	}
	c.metrics.RecordLatency("chat", time.Since(start).Seconds())
	return result, nil
}
