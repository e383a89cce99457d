package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TradeLens/internal/domain/repository"
	"TradeLens/internal/usecase"
	"TradeLens/pkg/cache"
	"TradeLens/pkg/config"
	xhttp "TradeLens/pkg/http"
	"TradeLens/pkg/http/middleware"
	pkgkafka "TradeLens/pkg/kafka"
	applogger "TradeLens/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP server, background
// sync, and the optional Kafka ingest consumer.
type App struct {
	cfg            *config.Config
	logger         *applogger.Logger
	handler        xhttp.Handler
	syncSvc        *usecase.SyncService
	consumer       *pkgkafka.Consumer
	signalsHandler *usecase.SignalsHandler
	publisher      repository.EventPublisher
	archiver       repository.SnapshotArchiver
	cacheSvc       cache.Service
	httpServer     *xhttp.Server
}

// New creates the App with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	syncSvc *usecase.SyncService,
	consumer *pkgkafka.Consumer,
	signalsHandler *usecase.SignalsHandler,
	publisher repository.EventPublisher,
	archiver repository.SnapshotArchiver,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:            cfg,
		logger:         logger,
		handler:        handler,
		syncSvc:        syncSvc,
		consumer:       consumer,
		signalsHandler: signalsHandler,
		publisher:      publisher,
		archiver:       archiver,
		cacheSvc:       cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// When Kafka is on, aggregated error batches ride the events topic too.
	if pub, ok := a.publisher.(applogger.Publisher); ok {
		a.logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.EventsTopic,
			Publisher:      pub,
		})
		defer a.logger.RemoveCollector()
	}

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout),
		xhttp.WithShutdownTimeout(a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
		}),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics())
	}
	a.httpServer = xhttp.NewServer(a.logger, []xhttp.Handler{a.handler}, opts...)

	// Initial sync so the API serves data immediately, then the ticker.
	go a.syncSvc.SyncAll(ctx)
	a.syncSvc.StartAuto(ctx)

	if a.consumer != nil && a.signalsHandler != nil {
		if err := a.consumer.RegisterHandler(a.signalsHandler); err != nil {
			return err
		}
		if err := a.consumer.Start(ctx); err != nil {
			return err
		}
		a.logger.Info("kafka consumer started",
			applogger.String("topic", a.signalsHandler.Topic()))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.httpServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.logger.Info("shutdown signal received", applogger.String("signal", sig.String()))
	}

	return a.shutdown(ctx)
}

func (a *App) shutdown(ctx context.Context) error {
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}
	if a.consumer != nil {
		if err := a.consumer.Stop(); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("publisher close error", applogger.Error(err))
	}
	if err := a.archiver.Close(); err != nil {
		a.logger.Warn("archiver close error", applogger.Error(err))
	}
	if err := a.cacheSvc.Close(); err != nil {
		a.logger.Warn("cache close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
