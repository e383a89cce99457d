package api

import (
	"errors"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
	"TradeLens/internal/usecase"
	pkghttp "TradeLens/pkg/http"
	applogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsHandler exposes the analytics API.
type SignalsHandler struct {
	syncSvc  *usecase.SyncService
	querySvc *usecase.QueryService
	chatSvc  *usecase.ChatService
	hub      *Hub
	logger   *applogger.Logger
}

// NewSignalsHandler creates the handler.
func NewSignalsHandler(
	syncSvc *usecase.SyncService,
	querySvc *usecase.QueryService,
	chatSvc *usecase.ChatService,
	hub *Hub,
	logger *applogger.Logger,
) *SignalsHandler {
	return &SignalsHandler{
		syncSvc:  syncSvc,
		querySvc: querySvc,
		chatSvc:  chatSvc,
		hub:      hub,
		logger:   logger,
	}
}

// RegisterRoutes implements pkg/http.Handler.
func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/api/sheets", h.Sheets)
	e.POST("/api/sync", h.Sync)
	e.GET("/api/stocks", h.Stocks)
	e.GET("/api/top", h.Top)
	e.GET("/api/analytics", h.Analytics)
	e.POST("/api/chat", h.Chat)
	e.GET("/api/insights", h.Insights)
	e.GET("/api/sync-status", h.SyncStatus)
	e.GET("/api/alerts", h.Alerts)
	e.GET("/ws", h.hub.Handle)
}

// Root reports service identity and liveness.
func (h *SignalsHandler) Root(c echo.Context) error {
	return pkghttp.SuccessResponse(c, map[string]interface{}{
		"service":    "TradeLens API",
		"status":     "running",
		"ws_clients": h.hub.ClientCount(),
	})
}

// Sheets lists configured spreadsheet sources.
func (h *SignalsHandler) Sheets(c echo.Context) error {
	return pkghttp.SuccessResponse(c, h.querySvc.Sheets(c.Request().Context()))
}

// Sync triggers a full refresh of every source.
func (h *SignalsHandler) Sync(c echo.Context) error {
	status := h.syncSvc.SyncAll(c.Request().Context())
	return pkghttp.SuccessResponse(c, status)
}

// Stocks returns filtered rows.
func (h *SignalsHandler) Stocks(c echo.Context) error {
	req := new(models.StocksRequest)
	if errs := pkghttp.ReadAndValidateRequest(c, req); errs != nil {
		return pkghttp.BadRequestResponse(c, errs)
	}

	spec := engine.FilterSpec{
		Trend:         req.Trend,
		TrendStrength: req.TrendStrength,
		Volatility:    req.Volatility,
		Sentiment:     req.Sentiment,
		MinSentiment:  req.MinSentiment,
		MaxSentiment:  req.MaxSentiment,
		MinADX:        req.MinADX,
	}
	return pkghttp.SuccessResponse(c, h.querySvc.Stocks(c.Request().Context(), spec, "", 0))
}

// Top returns the n highest-ranked rows by the requested key.
func (h *SignalsHandler) Top(c echo.Context) error {
	req := new(models.TopRequest)
	if errs := pkghttp.ReadAndValidateRequest(c, req); errs != nil {
		return pkghttp.BadRequestResponse(c, errs)
	}
	return pkghttp.SuccessResponse(c,
		h.querySvc.Stocks(c.Request().Context(), engine.FilterSpec{}, req.SortBy, req.N))
}

// Analytics returns the market summary.
func (h *SignalsHandler) Analytics(c echo.Context) error {
	return pkghttp.SuccessResponse(c, h.querySvc.Analytics(c.Request().Context()))
}

// Chat answers a natural-language question about the data.
func (h *SignalsHandler) Chat(c echo.Context) error {
	req := new(models.ChatRequest)
	if errs := pkghttp.ReadAndValidateRequest(c, req); errs != nil {
		return pkghttp.BadRequestResponse(c, errs)
	}

	answer, err := h.chatSvc.Chat(c.Request().Context(), req.Message, c.RealIP())
	if err != nil {
		if errors.Is(err, usecase.ErrRateLimited) {
			return pkghttp.AppErrorResponse(c,
				pkghttp.TooManyRequestsError("too many chat requests, slow down"))
		}
		h.logger.Error("chat failed", applogger.Error(err))
		return pkghttp.AppErrorResponse(c,
			pkghttp.ServiceUnavailableError("chat backend unavailable").WithError(err))
	}
	return pkghttp.SuccessResponse(c, answer)
}

// Insights returns cheap deterministic observations about the data.
func (h *SignalsHandler) Insights(c echo.Context) error {
	return pkghttp.SuccessResponse(c, map[string]interface{}{
		"insights": h.querySvc.Insights(c.Request().Context()),
	})
}

// SyncStatus reports store freshness.
func (h *SignalsHandler) SyncStatus(c echo.Context) error {
	return pkghttp.SuccessResponse(c, h.querySvc.SyncStatus(c.Request().Context()))
}

// Alerts returns the cached alerts worksheet.
func (h *SignalsHandler) Alerts(c echo.Context) error {
	return pkghttp.SuccessResponse(c, h.querySvc.Alerts(c.Request().Context()))
}
