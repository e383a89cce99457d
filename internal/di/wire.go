//go:build wireinject
// +build wireinject

package di

import (
	"TradeLens/pkg/config"
	"TradeLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideSignalSource,
		ProvideCache,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideClickHouseClient,

		// Repositories
		ProvideEventPublisher,
		ProvideSnapshotArchiver,
		ProvideFilterExtractor,

		// Use cases
		ProvideSignalStore,
		ProvideRateLimiter,
		ProvideSyncService,
		ProvideQueryService,
		ProvideChatService,
		ProvideSignalsHandler,

		// HTTP surface
		ProvideHub,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
