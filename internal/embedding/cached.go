package embedding

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/metrics"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/pkg/hash"
)

// VectorCache stores encoded vectors by key. A nil blob with a nil error is a miss.
type VectorCache interface {
	GetVector(ctx context.Context, key string) ([]byte, error)
	SetVector(ctx context.Context, key string, blob []byte) error
}

// CachedEmbedder is a cache-aside decorator. Cache failures are logged and
// fall through to the wrapped embedder.
type CachedEmbedder struct {
	next  TextEmbedder
	cache VectorCache
	model string
	log   zerolog.Logger
}

// NewCachedEmbedder wraps next. model namespaces the cache keys so a model
// change never serves stale vectors.
func NewCachedEmbedder(next TextEmbedder, cache VectorCache, model string, logger zerolog.Logger) *CachedEmbedder {
	return &CachedEmbedder{next: next, cache: cache, model: model, log: logger}
}

// Embed implements TextEmbedder.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if IsBlank(text) {
		return []float32{}, nil
	}

	key := CacheKey(c.model, text)
	if c.cache != nil {
		blob, err := c.cache.GetVector(ctx, key)
		if err != nil {
			c.log.Warn().Err(err).Msg("embeddings: cache get error")
		} else if blob != nil {
			if v := UnmarshalVector(blob); v != nil {
				metrics.EmbeddingCacheHits.Inc()
				return v, nil
			}
		}
	}
	metrics.EmbeddingCacheMisses.Inc()

	v, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	metrics.EmbeddingCalls.Inc()

	if c.cache != nil && len(v) > 0 {
		if err := c.cache.SetVector(ctx, key, MarshalVector(v)); err != nil {
			c.log.Warn().Err(err).Msg("embeddings: cache set error")
		}
	}
	return v, nil
}

// CacheKey returns the cache key for text under model.
func CacheKey(model, text string) string {
	return "emb:" + model + ":" + hash.SHA256Hex(text)
}
