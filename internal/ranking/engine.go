package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/embedding"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

const tracerName = "github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/ranking"

// Engine ranks candidate batches. It holds no per-call state and is safe for
// concurrent use as long as its embedder is.
type Engine struct {
	sim     *Similarity
	weights Weights
	now     func() time.Time
	log     zerolog.Logger
	tracer  trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights replaces the default weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithClock sets the clock used for freshness.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an Engine. It fails if the configured weights are invalid.
func NewEngine(embedder embedding.TextEmbedder, opts ...Option) (*Engine, error) {
	e := &Engine{
		weights: DefaultWeights(),
		now:     time.Now,
		log:     zerolog.Nop(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.weights.Validate(); err != nil {
		return nil, err
	}
	e.sim = NewSimilarity(embedder, e.log)
	return e, nil
}

// Weights returns the engine's weights.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Rank filters candidates, scores the survivors against query and returns
// them by descending composite score. Equal scores keep their input order.
// channels maps channel ID to channel info; missing entries count as zero
// subscribers. An embedder failure fails the whole call.
func (e *Engine) Rank(ctx context.Context, candidates []model.Candidate, channels map[string]model.ChannelInfo, query string) ([]model.RankedResult, error) {
	ctx, span := e.tracer.Start(ctx, "ranking.Rank")
	defer span.End()

	kept := survivors(candidates)
	span.SetAttributes(
		attribute.Int("ranking.candidates", len(candidates)),
		attribute.Int("ranking.survivors", len(kept)),
	)

	if len(kept) == 0 {
		e.log.Debug().Int("candidates", len(candidates)).Msg("rank: no candidates after filtering")
		return []model.RankedResult{}, nil
	}

	descriptions := make([]string, len(kept))
	for i, src := range kept {
		descriptions[i] = candidates[src].Description
	}

	simCtx, simSpan := e.tracer.Start(ctx, "ranking.Similarities")
	sims, err := e.sim.Similarities(simCtx, query, descriptions)
	if err != nil {
		simSpan.RecordError(err)
		simSpan.SetStatus(codes.Error, "similarity failed")
		simSpan.End()
		span.SetStatus(codes.Error, "similarity failed")
		return nil, fmt.Errorf("similarity: %w", err)
	}
	simSpan.End()

	// Pass 1: raw signals for the whole batch.
	now := e.now()
	raw := make([]model.RawSignals, len(kept))
	for i, src := range kept {
		c := candidates[src]
		raw[i] = Extract(c, lookupChannel(channels, c.ChannelID), sims[i], now)
	}

	// Pass 2: normalize against batch statistics, then score.
	minCD, maxCD := CommentDensityRange(raw)
	results := make([]model.RankedResult, len(kept))
	for i, src := range kept {
		c := candidates[src]
		norm := Normalize(raw[i], minCD, maxCD)
		results[i] = model.RankedResult{
			VideoID:           c.VideoID,
			Title:             c.Title,
			ChannelTitle:      c.ChannelTitle,
			ChannelID:         c.ChannelID,
			Description:       c.Description,
			ThumbnailURL:      c.ThumbnailURL,
			PublishedAt:       c.PublishedAt.UTC().Format(time.RFC3339),
			DurationSeconds:   ParseDuration(c.Duration),
			ViewCount:         c.ViewCount,
			CommentCount:      c.CommentCount,
			SubscriberCount:   subscribers(lookupChannel(channels, c.ChannelID)),
			CompositeScore:    e.weights.Score(norm),
			RawSignals:        raw[i],
			NormalizedSignals: norm,
			SourceIndex:       src,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompositeScore > results[j].CompositeScore
	})

	e.log.Debug().
		Int("candidates", len(candidates)).
		Int("ranked", len(results)).
		Float64("top_score", results[0].CompositeScore).
		Msg("rank: complete")

	return results, nil
}

func lookupChannel(channels map[string]model.ChannelInfo, id string) *model.ChannelInfo {
	ch, ok := channels[id]
	if !ok {
		return nil
	}
	return &ch
}
