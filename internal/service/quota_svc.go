package service

import (
	"context"
	"math"
	"time"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/metrics"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

// DailyQuotaLimit is the default YouTube Data API allowance per project.
const DailyQuotaLimit = 10_000

// QuotaStore persists per-day quota totals. *repository.QuotaRepo implements it.
type QuotaStore interface {
	Increment(ctx context.Context, day time.Time, units int) (int, error)
	Get(ctx context.Context, day time.Time) (int, error)
}

type QuotaService struct {
	store QuotaStore
	now   func() time.Time
}

func NewQuotaService(store QuotaStore) *QuotaService {
	return &QuotaService{store: store, now: time.Now}
}

// Charge adds units to today's (UTC) total.
func (s *QuotaService) Charge(ctx context.Context, units int) error {
	if units <= 0 {
		return nil
	}
	if _, err := s.store.Increment(ctx, s.now().UTC(), units); err != nil {
		return err
	}
	metrics.QuotaUnits.Add(float64(units))
	return nil
}

// Today returns today's usage against the daily limit.
func (s *QuotaService) Today(ctx context.Context) (*model.QuotaResponse, error) {
	used, err := s.store.Get(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return &model.QuotaResponse{
		UnitsUsedToday: used,
		DailyLimit:     DailyQuotaLimit,
		PercentUsed:    percentUsed(used, DailyQuotaLimit),
	}, nil
}

// percentUsed returns used/limit as a percentage rounded to one decimal.
func percentUsed(used, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return round1(float64(used) / float64(limit) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
