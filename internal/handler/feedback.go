package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/middleware"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/service"
)

// EventRecorder is implemented by *service.FeedbackService.
type EventRecorder interface {
	Submit(ctx context.Context, req model.FeedbackRequest) error
	RecordClick(ctx context.Context, req model.ClickRequest) error
}

type FeedbackHandler struct {
	svc EventRecorder
}

func NewFeedbackHandler(svc EventRecorder) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit handles POST /api/feedback
func (h *FeedbackHandler) Submit(c fiber.Ctx) error {
	var req model.FeedbackRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if errMsg := validateIDs(&req.QueryID, &req.VideoID); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if errMsg := middleware.ValidateStruct(req); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Submit(c.Context(), req); err != nil {
		if errors.Is(err, service.ErrInvalidFeedback) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FEEDBACK", err.Error())
		}
		middleware.Logger.Error().Err(err).Msg("feedback: insert failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save feedback")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Click handles POST /api/click
func (h *FeedbackHandler) Click(c fiber.Ctx) error {
	var req model.ClickRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if errMsg := validateIDs(&req.QueryID, &req.VideoID); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if errMsg := middleware.ValidateStruct(req); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.RecordClick(c.Context(), req); err != nil {
		middleware.Logger.Error().Err(err).Msg("click: insert failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save click")
	}

	return c.JSON(fiber.Map{"success": true})
}

// validateIDs normalizes both ids in place.
func validateIDs(queryID, videoID *string) string {
	q, errMsg := middleware.ValidateQueryID(*queryID)
	if errMsg != "" {
		return errMsg
	}
	v, errMsg := middleware.ValidateVideoID(*videoID)
	if errMsg != "" {
		return errMsg
	}
	*queryID, *videoID = q, v
	return ""
}
