package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"TradeLens/pkg/http/middleware"
	applogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerOption configures Server.
type ServerOption func(*Server)

// Server wraps echo with lifecycle management.
type Server struct {
	echo   *echo.Echo
	logger *applogger.Logger

	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	corsConfig      *middleware.CORSConfig
	metricsEnabled  bool
}

// NewServer creates an HTTP server and registers routes from the given handlers.
func NewServer(l *applogger.Logger, handlers []Handler, opts ...ServerOption) *Server {
	s := &Server{
		logger:          l,
		port:            8000,
		readTimeout:     15 * time.Second,
		writeTimeout:    15 * time.Second,
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover(l))
	e.Use(middleware.RequestLogging(l))
	if s.corsConfig != nil {
		e.Use(middleware.CORS(*s.corsConfig))
	}
	if s.metricsEnabled {
		e.Use(middleware.Metrics())
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	for _, h := range handlers {
		h.RegisterRoutes(e)
	}

	s.echo = e
	return s
}

// WithPort sets the listen port.
func WithPort(port int) ServerOption {
	return func(s *Server) {
		if port > 0 {
			s.port = port
		}
	}
}

// WithTimeouts sets read/write timeouts.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// WithShutdownTimeout sets the graceful shutdown deadline.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithCORS enables CORS middleware.
func WithCORS(cfg middleware.CORSConfig) ServerOption {
	return func(s *Server) {
		s.corsConfig = &cfg
	}
}

// WithMetrics enables the prometheus middleware and /metrics endpoint.
func WithMetrics() ServerOption {
	return func(s *Server) {
		s.metricsEnabled = true
	}
}

// Start runs the server. Blocks until the server stops.
func (s *Server) Start() error {
	s.echo.Server.ReadTimeout = s.readTimeout
	s.echo.Server.WriteTimeout = s.writeTimeout

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("http server listening", applogger.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
