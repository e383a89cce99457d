package di

import (
	"context"
	"fmt"
	"time"

	"TradeLens/internal/domain/repository"
	"TradeLens/internal/handler/api"
	internalrepo "TradeLens/internal/repository"
	"TradeLens/internal/service/llm"
	"TradeLens/internal/service/ratelimit"
	"TradeLens/internal/service/sheets"
	"TradeLens/internal/usecase"
	"TradeLens/pkg/cache"
	pkgch "TradeLens/pkg/clickhouse"
	"TradeLens/pkg/config"
	xhttp "TradeLens/pkg/http"
	pkgkafka "TradeLens/pkg/kafka"
	applogger "TradeLens/pkg/logger"
	"TradeLens/pkg/metrics"
	"TradeLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.NewRecorder()
}

// ProvideSignalSource creates the Google Sheets client.
func ProvideSignalSource(cfg *config.Config) repository.SignalSource {
	return sheets.NewClient(cfg.Sheets.APIKey, cfg.Sheets.Timeout)
}

// ProvideCache creates the cache backing chat memoization. Layered over
// Redis when configured, plain in-process memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Chat.CacheSize),
			cache.WithMemoryTTL(cfg.Chat.CacheTTL),
		), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize)), nil
}

// ProvideKafkaProducer creates the Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithWriteTimeout(cfg.Kafka.Producer.WriteTimeout),
		pkgkafka.WithBatch(100, cfg.Kafka.Producer.BatchTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher wraps the producer, falling back to a no-op when
// Kafka is disabled.
func ProvideEventPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NoopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.EventsTopic)
}

// ProvideKafkaConsumer creates the signals consumer, or nil when disabled
// or no signals topic is configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.SignalsTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideSignalsHandler creates the Kafka ingest handler.
func ProvideSignalsHandler(cfg *config.Config, store *usecase.SignalStore, logger *applogger.Logger) *usecase.SignalsHandler {
	return usecase.NewSignalsHandler(cfg.Kafka.SignalsTopic, store, logger)
}

// ProvideClickHouseClient creates the ClickHouse client, or nil when
// archiving is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSnapshotArchiver wraps the ClickHouse client, falling back to a
// no-op when archiving is disabled.
func ProvideSnapshotArchiver(client *pkgch.Client) (repository.SnapshotArchiver, error) {
	if client == nil {
		return internalrepo.NoopArchiver{}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	archiver, err := internalrepo.NewClickHouseArchiver(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("clickhouse archiver: %w", err)
	}
	return archiver, nil
}

// ProvideFilterExtractor creates the LLM client.
func ProvideFilterExtractor(cfg *config.Config) repository.FilterExtractor {
	return llm.NewClient(llm.Config{
		BaseURL:     cfg.OpenAI.BaseURL,
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
	})
}

// ProvideSignalStore creates the shared in-memory store.
func ProvideSignalStore() *usecase.SignalStore {
	return usecase.NewSignalStore()
}

// ProvideHub creates the websocket hub.
func ProvideHub(logger *applogger.Logger) *api.Hub {
	return api.NewHub(logger)
}

// ProvideRateLimiter creates the chat token-bucket limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideSyncService wires the sync pipeline.
func ProvideSyncService(
	cfg *config.Config,
	source repository.SignalSource,
	store *usecase.SignalStore,
	publisher repository.EventPublisher,
	archiver repository.SnapshotArchiver,
	m repository.Metrics,
	hub *api.Hub,
	logger *applogger.Logger,
) *usecase.SyncService {
	return usecase.NewSyncService(
		usecase.SyncConfig{
			SheetIDs:        cfg.Sheets.SheetIDs,
			WorksheetGID:    cfg.Sheets.WorksheetGID,
			AlertsWorksheet: cfg.Sheets.AlertsWorksheet,
			AutoInterval:    cfg.Sync.AutoInterval,
		},
		source, store, publisher, archiver, m, hub, logger,
	)
}

// ProvideQueryService wires the read path.
func ProvideQueryService(
	cfg *config.Config,
	store *usecase.SignalStore,
	source repository.SignalSource,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.QueryService {
	return usecase.NewQueryService(store, source, cfg.Sheets.SheetIDs, m, logger)
}

// ProvideChatService wires the chat path.
func ProvideChatService(
	cfg *config.Config,
	store *usecase.SignalStore,
	extractor repository.FilterExtractor,
	cacheSvc cache.Service,
	limiter *ratelimit.Limiter,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.ChatService {
	return usecase.NewChatService(
		usecase.ChatConfig{
			CacheTTL:     cfg.Chat.CacheTTL,
			RateCapacity: cfg.Chat.RateCapacity,
			RatePerSec:   cfg.Chat.RatePerSec,
		},
		store, extractor, cacheSvc, limiter, m, logger,
	)
}

// ProvideHTTPHandler creates the API handler.
func ProvideHTTPHandler(
	syncSvc *usecase.SyncService,
	querySvc *usecase.QueryService,
	chatSvc *usecase.ChatService,
	hub *api.Hub,
	logger *applogger.Logger,
) xhttp.Handler {
	return api.NewSignalsHandler(syncSvc, querySvc, chatSvc, hub, logger)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	syncSvc *usecase.SyncService,
	consumer *pkgkafka.Consumer,
	signalsHandler *usecase.SignalsHandler,
	publisher repository.EventPublisher,
	archiver repository.SnapshotArchiver,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, logger, handler, syncSvc, consumer, signalsHandler, publisher, archiver, cacheSvc)
}
