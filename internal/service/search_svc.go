package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/metrics"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/ranking"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/youtube"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/pkg/hash"
)

// MaxSearchResults is the candidate pool size requested from search.list.
const MaxSearchResults = 50

// TopVideosRecorded is how many ranked video IDs are kept in query history.
const TopVideosRecorded = 3

var ErrEmptyQuery = errors.New("query is required")

// Catalog is the video source. *youtube.Client implements it.
type Catalog interface {
	SearchVideoIDs(ctx context.Context, query string, maxResults int) ([]string, error)
	VideoDetails(ctx context.Context, ids []string) ([]youtube.Video, error)
	ChannelDetails(ctx context.Context, ids []string) ([]youtube.Channel, error)
}

// Ranker orders candidates. *ranking.Engine implements it.
type Ranker interface {
	Rank(ctx context.Context, candidates []model.Candidate, channels map[string]model.ChannelInfo, query string) ([]model.RankedResult, error)
}

// QuotaCharger records API units spent. *QuotaService implements it.
type QuotaCharger interface {
	Charge(ctx context.Context, units int) error
}

// HistoryRecorder accepts query history entries. *EventWorker implements it.
type HistoryRecorder interface {
	Enqueue(entry model.QueryHistoryEntry)
}

type SearchService struct {
	catalog Catalog
	ranker  Ranker
	quota   QuotaCharger
	history HistoryRecorder
	now     func() time.Time
	log     zerolog.Logger
}

func NewSearchService(catalog Catalog, ranker Ranker, quota QuotaCharger, history HistoryRecorder, logger zerolog.Logger) *SearchService {
	return &SearchService{
		catalog: catalog,
		ranker:  ranker,
		quota:   quota,
		history: history,
		now:     time.Now,
		log:     logger,
	}
}

// Search runs the full flow: search, details, filter, channel lookup, rank.
// Quota is charged for every API call that was made, even when the result
// set ends up empty.
func (s *SearchService) Search(ctx context.Context, rawQuery string) (*model.SearchResponse, error) {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	ids, err := s.catalog.SearchVideoIDs(ctx, query, MaxSearchResults)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search videos: %w", err)
	}
	units := youtube.QuotaSearch

	if len(ids) == 0 {
		s.charge(ctx, units)
		metrics.SearchesTotal.WithLabelValues("no_hits").Inc()
		return s.response(hash.NewQueryID(), []model.RankedResult{}, units), nil
	}

	videos, err := s.catalog.VideoDetails(ctx, ids)
	if err != nil {
		s.charge(ctx, units)
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("video details: %w", err)
	}
	units += youtube.QuotaVideosList

	candidates := youtube.Candidates(videos)
	channelIDs, survivors := survivingChannelIDs(candidates)
	queryID := hash.NewQueryID()

	if survivors == 0 {
		metrics.CandidatesFiltered.Add(float64(len(candidates)))
		s.charge(ctx, units)
		s.record(queryID, query, nil)
		metrics.SearchesTotal.WithLabelValues("all_filtered").Inc()
		return s.response(queryID, []model.RankedResult{}, units), nil
	}

	channels, err := s.catalog.ChannelDetails(ctx, channelIDs)
	if err != nil {
		s.charge(ctx, units)
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("channel details: %w", err)
	}
	units += youtube.QuotaChannelsList

	start := time.Now()
	results, err := s.ranker.Rank(ctx, candidates, youtube.ChannelMap(channels), query)
	metrics.RankDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.charge(ctx, units)
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("rank: %w", err)
	}
	metrics.CandidatesFiltered.Add(float64(len(candidates) - len(results)))
	metrics.CandidatesRanked.Add(float64(len(results)))

	s.charge(ctx, units)
	s.record(queryID, query, results)
	metrics.SearchesTotal.WithLabelValues("ok").Inc()

	s.log.Info().
		Str("query_id", queryID).
		Str("query_hash", hash.ShortHash(query, 12)).
		Int("candidates", len(candidates)).
		Int("ranked", len(results)).
		Int("quota_units", units).
		Msg("search complete")

	return s.response(queryID, results, units), nil
}

func (s *SearchService) response(queryID string, results []model.RankedResult, units int) *model.SearchResponse {
	return &model.SearchResponse{QueryID: queryID, Results: results, QuotaUnitsUsed: units}
}

// charge records quota usage. A failure is logged: the units were spent
// regardless and the caller should still get its results.
func (s *SearchService) charge(ctx context.Context, units int) {
	if err := s.quota.Charge(ctx, units); err != nil {
		s.log.Error().Err(err).Int("units", units).Msg("search: quota charge failed")
	}
}

func (s *SearchService) record(queryID, query string, results []model.RankedResult) {
	top := make([]string, 0, TopVideosRecorded)
	for i := 0; i < len(results) && i < TopVideosRecorded; i++ {
		top = append(top, results[i].VideoID)
	}
	s.history.Enqueue(model.QueryHistoryEntry{
		QueryID:     queryID,
		Query:       query,
		ExecutedAt:  s.now().UTC(),
		ResultCount: len(results),
		TopVideos:   top,
	})
}

// survivingChannelIDs returns the unique channel IDs of candidates that pass
// the filter, in first-seen order, and the number of survivors.
func survivingChannelIDs(candidates []model.Candidate) ([]string, int) {
	seen := make(map[string]struct{})
	var ids []string
	survivors := 0
	for _, c := range candidates {
		if !ranking.Keep(c) {
			continue
		}
		survivors++
		if _, ok := seen[c.ChannelID]; ok || c.ChannelID == "" {
			continue
		}
		seen[c.ChannelID] = struct{}{}
		ids = append(ids, c.ChannelID)
	}
	return ids, survivors
}
