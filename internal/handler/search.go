package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/embedding"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/middleware"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/service"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/youtube"
)

// Searcher is implemented by *service.SearchService.
type Searcher interface {
	Search(ctx context.Context, query string) (*model.SearchResponse, error)
}

type SearchHandler struct {
	svc Searcher
}

func NewSearchHandler(svc Searcher) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles POST /api/search
func (h *SearchHandler) Search(c fiber.Ctx) error {
	var req model.SearchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	query, errMsg := middleware.ValidateQuery(req.Query)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Search(c.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
		case errors.Is(err, youtube.ErrMissingAPIKey):
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "YOUTUBE_NOT_CONFIGURED", "YouTube API key is not configured")
		case errors.Is(err, embedding.ErrModelUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "MODEL_UNAVAILABLE", "Embedding model is unavailable")
		case errors.Is(err, youtube.ErrAPI):
			middleware.Logger.Warn().Err(err).Msg("search: youtube request failed")
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "YouTube request failed")
		}
		middleware.Logger.Error().Err(err).Msg("search failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Search failed")
	}

	return c.JSON(resp)
}
