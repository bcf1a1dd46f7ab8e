package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/middleware"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/service"
)

// AnalyticsComputer is implemented by *service.AnalyticsService.
type AnalyticsComputer interface {
	Compute(ctx context.Context, period string) (*model.AnalyticsResponse, error)
}

type AnalyticsHandler struct {
	svc AnalyticsComputer
}

func NewAnalyticsHandler(svc AnalyticsComputer) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Get handles GET /api/analytics?period=7d|30d|90d|all
func (h *AnalyticsHandler) Get(c fiber.Ctx) error {
	period := fiber.Query[string](c, "period")

	resp, err := h.svc.Compute(c.Context(), period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PERIOD", err.Error())
		}
		middleware.Logger.Error().Err(err).Str("period", period).Msg("analytics failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute analytics")
	}

	return c.JSON(resp)
}
