package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

const dateLayout = "2006-01-02"

// Analytics periods.
const (
	Period7d  model.AnalyticsPeriod = "7d"
	Period30d model.AnalyticsPeriod = "30d"
	Period90d model.AnalyticsPeriod = "90d"
	PeriodAll model.AnalyticsPeriod = "all"
)

var ErrInvalidPeriod = errors.New("invalid period, use 7d, 30d, 90d, or all")

// ParsePeriod validates p and returns its length in days, 0 for "all".
// An empty string means 7d.
func ParsePeriod(p string) (model.AnalyticsPeriod, int, error) {
	switch model.AnalyticsPeriod(p) {
	case "", Period7d:
		return Period7d, 7, nil
	case Period30d:
		return Period30d, 30, nil
	case Period90d:
		return Period90d, 90, nil
	case PeriodAll:
		return PeriodAll, 0, nil
	default:
		return "", 0, ErrInvalidPeriod
	}
}

type QueryHistorySource interface {
	Since(ctx context.Context, since time.Time) ([]model.QueryHistoryEntry, error)
}

type FeedbackSource interface {
	Since(ctx context.Context, since time.Time) ([]model.FeedbackEntry, error)
}

type ClickSource interface {
	Since(ctx context.Context, since time.Time) ([]model.ClickEvent, error)
}

type QuotaSource interface {
	Since(ctx context.Context, since time.Time) ([]model.QuotaLogEntry, error)
}

// AnalyticsData is the raw event log for a period.
type AnalyticsData struct {
	Queries  []model.QueryHistoryEntry
	Feedback []model.FeedbackEntry
	Clicks   []model.ClickEvent
	Quota    []model.QuotaLogEntry
}

type AnalyticsService struct {
	queries  QueryHistorySource
	feedback FeedbackSource
	clicks   ClickSource
	quota    QuotaSource
	now      func() time.Time
}

func NewAnalyticsService(queries QueryHistorySource, feedback FeedbackSource, clicks ClickSource, quota QuotaSource) *AnalyticsService {
	return &AnalyticsService{queries: queries, feedback: feedback, clicks: clicks, quota: quota, now: time.Now}
}

// Compute loads the event log for period and aggregates it.
func (s *AnalyticsService) Compute(ctx context.Context, period string) (*model.AnalyticsResponse, error) {
	p, days, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	var since time.Time
	if days > 0 {
		since = startOfDay(today).AddDate(0, 0, -(days - 1))
	}

	var data AnalyticsData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Queries, err = s.queries.Since(gctx, since)
		return wrapLoad("query history", err)
	})
	g.Go(func() (err error) {
		data.Feedback, err = s.feedback.Since(gctx, since)
		return wrapLoad("feedback", err)
	})
	g.Go(func() (err error) {
		data.Clicks, err = s.clicks.Since(gctx, since)
		return wrapLoad("clicks", err)
	})
	g.Go(func() (err error) {
		data.Quota, err = s.quota.Since(gctx, since)
		return wrapLoad("quota", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := ComputeAnalytics(data, p, days, today)
	return &resp, nil
}

func wrapLoad(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}

// ComputeAnalytics aggregates data into a per-day time series and period
// summary. days is the period length, 0 meaning everything since the first
// recorded query or quota day. Dates are UTC calendar days.
//
// A null search is one with no clicks. Feedback counts only the latest
// record per query and video.
func ComputeAnalytics(data AnalyticsData, period model.AnalyticsPeriod, days int, now time.Time) model.AnalyticsResponse {
	today := now.UTC().Format(dateLayout)

	start := today
	if days > 0 {
		start = startOfDay(now.UTC()).AddDate(0, 0, -(days - 1)).Format(dateLayout)
	} else {
		for _, q := range data.Queries {
			if d := dateOf(q.ExecutedAt); d < start {
				start = d
			}
		}
		for _, q := range data.Quota {
			if q.Date < start {
				start = q.Date
			}
		}
	}
	inRange := func(d string) bool { return d >= start && d <= today }

	queriesByDate := make(map[string][]string)
	var queryIDs []string
	for _, q := range data.Queries {
		d := dateOf(q.ExecutedAt)
		if !inRange(d) {
			continue
		}
		queriesByDate[d] = append(queriesByDate[d], q.QueryID)
		queryIDs = append(queryIDs, q.QueryID)
	}

	clicksPerQuery := make(map[string]int)
	for _, c := range data.Clicks {
		if inRange(dateOf(c.ClickedAt)) {
			clicksPerQuery[c.QueryID]++
		}
	}

	type pair struct{ query, video string }
	latest := make(map[pair]string)
	for _, f := range data.Feedback {
		if inRange(dateOf(f.FeedbackAt)) {
			latest[pair{f.QueryID, f.VideoID}] = f.Feedback
		}
	}
	upPerQuery := make(map[string]int)
	downPerQuery := make(map[string]int)
	for k, fb := range latest {
		switch fb {
		case model.FeedbackThumbsUp:
			upPerQuery[k.query]++
		case model.FeedbackThumbsDown:
			downPerQuery[k.query]++
		}
	}

	quotaByDate := make(map[string]int)
	for _, q := range data.Quota {
		if inRange(q.Date) {
			quotaByDate[q.Date] = q.UnitsUsed
		}
	}

	series := []model.TimeSeriesDataPoint{}
	for _, d := range dateRange(start, today) {
		ids := queriesByDate[d]
		var nulls, ups, downs, clicks int
		for _, id := range ids {
			if clicksPerQuery[id] == 0 {
				nulls++
			}
			ups += upPerQuery[id]
			downs += downPerQuery[id]
			clicks += clicksPerQuery[id]
		}
		n := len(ids)
		series = append(series, model.TimeSeriesDataPoint{
			Date:                d,
			Searches:            n,
			NullSearchPercent:   round1(ratio(nulls, n) * 100),
			ThumbsUpPerSearch:   round1(ratio(ups, n)),
			ThumbsDownPerSearch: round1(ratio(downs, n)),
			ClicksPerSearch:     round1(ratio(clicks, n)),
			APIUnits:            quotaByDate[d],
		})
	}

	totalDays := len(series)
	var totalSearches, totalUnits int
	for _, p := range series {
		totalSearches += p.Searches
		totalUnits += p.APIUnits
	}
	var totalNulls int
	for _, id := range queryIDs {
		if clicksPerQuery[id] == 0 {
			totalNulls++
		}
	}

	var unitsPerDay int
	if totalDays > 0 {
		unitsPerDay = int(math.Round(float64(totalUnits) / float64(totalDays)))
	}

	return model.AnalyticsResponse{
		Period: period,
		Summary: model.AnalyticsSummary{
			SearchesPerDay:      round1(ratio(totalSearches, totalDays)),
			NullSearchPercent:   round1(ratio(totalNulls, totalSearches) * 100),
			ThumbsUpPerSearch:   round1(ratio(sumValues(upPerQuery), totalSearches)),
			ThumbsDownPerSearch: round1(ratio(sumValues(downPerQuery), totalSearches)),
			ClicksPerSearch:     round1(ratio(sumValues(clicksPerQuery), totalSearches)),
			APIUnitsPerDay:      unitsPerDay,
		},
		TimeSeries: series,
	}
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func sumValues(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func dateOf(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateRange lists the days from start to end inclusive. Malformed bounds or
// start after end yield no days.
func dateRange(start, end string) []string {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil
	}
	var out []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(dateLayout))
	}
	return out
}
