package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/middleware"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

// QuotaReporter is implemented by *service.QuotaService.
type QuotaReporter interface {
	Today(ctx context.Context) (*model.QuotaResponse, error)
}

type QuotaHandler struct {
	svc QuotaReporter
}

func NewQuotaHandler(svc QuotaReporter) *QuotaHandler {
	return &QuotaHandler{svc: svc}
}

// Get handles GET /api/quota
func (h *QuotaHandler) Get(c fiber.Ctx) error {
	resp, err := h.svc.Today(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch quota")
	}
	return c.JSON(resp)
}
