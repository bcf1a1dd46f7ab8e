package ranking

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/embedding"
)

// Similarity computes semantic similarity between a query and descriptions.
type Similarity struct {
	embedder embedding.TextEmbedder
	log      zerolog.Logger
}

// NewSimilarity wraps embedder.
func NewSimilarity(embedder embedding.TextEmbedder, logger zerolog.Logger) *Similarity {
	return &Similarity{embedder: embedder, log: logger}
}

// Similarity returns the clamped cosine similarity of query and description.
// A blank description scores 0 without calling the embedder.
func (s *Similarity) Similarity(ctx context.Context, query, description string) (float64, error) {
	if embedding.IsBlank(description) {
		return 0, nil
	}

	qv, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("embed query: %w", err)
	}
	dv, err := s.embedder.Embed(ctx, description)
	if err != nil {
		return 0, fmt.Errorf("embed description: %w", err)
	}
	return Cosine(qv, dv), nil
}

// Similarities is the batched form of Similarity. The query is embedded once
// and descriptions are embedded one after another in input order. Results
// match calling Similarity per description.
func (s *Similarity) Similarities(ctx context.Context, query string, descriptions []string) ([]float64, error) {
	out := make([]float64, len(descriptions))

	var qv []float32
	queryDone := false
	embedded := 0

	for i, d := range descriptions {
		if embedding.IsBlank(d) {
			continue
		}
		if !queryDone {
			v, err := s.embedder.Embed(ctx, query)
			if err != nil {
				return nil, fmt.Errorf("embed query: %w", err)
			}
			qv = v
			queryDone = true
		}

		dv, err := s.embedder.Embed(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("embed description %d: %w", i, err)
		}
		out[i] = Cosine(qv, dv)
		embedded++
	}

	s.log.Debug().
		Int("descriptions", len(descriptions)).
		Int("embedded", embedded).
		Msg("similarity: batch complete")

	return out, nil
}

// Cosine returns the cosine similarity of two unit-norm vectors, clamped to
// [0,1]. Negative similarity is treated as unrelated. An empty vector on
// either side yields exactly 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return clamp01(embedding.Dot(a, b))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
