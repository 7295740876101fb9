package api

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"BetaPulse/internal/domain/models"
	domrepo "BetaPulse/internal/domain/repository"
	"BetaPulse/internal/usecase"
	"BetaPulse/pkg/cache"
	xhttp "BetaPulse/pkg/http"
	applogger "BetaPulse/pkg/logger"
)

// AnalyticsEchoHandler serves the read-only analytics API over the cached
// snapshots, history rings, and the market overview.
type AnalyticsEchoHandler struct {
	l      *applogger.Logger
	status *usecase.StatusUseCase
	store  domrepo.AnalyticsStore
}

// NewAnalyticsEchoHandler creates the analytics API handler.
func NewAnalyticsEchoHandler(l *applogger.Logger, status *usecase.StatusUseCase, store domrepo.AnalyticsStore) *AnalyticsEchoHandler {
	return &AnalyticsEchoHandler{l: l, status: status, store: store}
}

// RegisterRoutes registers the analytics endpoints.
func (h *AnalyticsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/status", h.getStatus)
	g.GET("/overview", h.getOverview)
	g.GET("/snapshot/:symbol", h.getSnapshot)
	g.GET("/history/:symbol", h.getHistory)
}

func (h *AnalyticsEchoHandler) getStatus(c echo.Context) error {
	st, err := h.status.Status(c.Request().Context())
	if err != nil {
		h.l.Error("status query failed", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, st)
}

func (h *AnalyticsEchoHandler) getOverview(c echo.Context) error {
	ov, err := h.store.GetOverview(c.Request().Context())
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return xhttp.NotFoundResponse(c, "overview not computed yet")
		}
		h.l.Error("overview read failed", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, ov)
}

func (h *AnalyticsEchoHandler) getSnapshot(c echo.Context) error {
	var req models.SnapshotRequest
	if verrs := xhttp.ReadAndValidateRequest(c, &req); verrs != nil {
		return xhttp.BadRequestResponse(c, verrs)
	}

	symbol := strings.ToUpper(req.Symbol)
	snap, err := h.store.GetSnapshot(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return xhttp.NotFoundResponse(c, "no snapshot for "+symbol)
		}
		h.l.Error("snapshot read failed", applogger.String("symbol", symbol), applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *AnalyticsEchoHandler) getHistory(c echo.Context) error {
	var req models.HistoryRequest
	if verrs := xhttp.ReadAndValidateRequest(c, &req); verrs != nil {
		return xhttp.BadRequestResponse(c, verrs)
	}

	symbol := strings.ToUpper(req.Symbol)
	points, err := h.store.GetHistory(c.Request().Context(), symbol)
	if err != nil {
		h.l.Error("history read failed", applogger.String("symbol", symbol), applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	if len(points) > req.Limit {
		points = points[len(points)-req.Limit:]
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol": symbol,
		"points": points,
		"count":  len(points),
	})
}
