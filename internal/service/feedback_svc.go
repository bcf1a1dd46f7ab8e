package service

import (
	"context"
	"errors"
	"time"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

var ErrInvalidFeedback = errors.New("feedback must be thumbs_up, thumbs_down, or none")

// FeedbackStore is implemented by *repository.FeedbackRepo.
type FeedbackStore interface {
	Insert(ctx context.Context, f model.FeedbackEntry) error
}

// ClickStore is implemented by *repository.ClickRepo.
type ClickStore interface {
	Insert(ctx context.Context, e model.ClickEvent) error
}

type FeedbackService struct {
	feedback FeedbackStore
	clicks   ClickStore
	now      func() time.Time
}

func NewFeedbackService(feedback FeedbackStore, clicks ClickStore) *FeedbackService {
	return &FeedbackService{feedback: feedback, clicks: clicks, now: time.Now}
}

// Submit appends a feedback record. "none" clears earlier feedback for the
// same query and video since the latest record wins.
func (s *FeedbackService) Submit(ctx context.Context, req model.FeedbackRequest) error {
	switch req.Feedback {
	case model.FeedbackThumbsUp, model.FeedbackThumbsDown, model.FeedbackNone:
	default:
		return ErrInvalidFeedback
	}

	return s.feedback.Insert(ctx, model.FeedbackEntry{
		QueryID:        req.QueryID,
		VideoID:        req.VideoID,
		Feedback:       req.Feedback,
		CompositeScore: req.CompositeScore,
		RawSignals:     req.RawSignals,
		FeedbackAt:     s.now().UTC(),
	})
}

// RecordClick appends a click event.
func (s *FeedbackService) RecordClick(ctx context.Context, req model.ClickRequest) error {
	rank := 0
	if req.ClickedRank != nil {
		rank = *req.ClickedRank
	}
	return s.clicks.Insert(ctx, model.ClickEvent{
		QueryID:     req.QueryID,
		VideoID:     req.VideoID,
		ClickedRank: rank,
		ClickedAt:   s.now().UTC(),
	})
}
