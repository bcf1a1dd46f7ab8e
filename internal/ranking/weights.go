package ranking

import (
	"errors"
	"fmt"
	"math"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

// weightSumTolerance bounds floating error when checking weights sum to 1.
const weightSumTolerance = 1e-6

// ErrInvalidWeights is returned when weights are negative or do not sum to 1.
var ErrInvalidWeights = errors.New("invalid ranking weights")

// Weights are the composite score coefficients. They are static
// configuration and must form a convex combination.
type Weights struct {
	CommentDensity          float64 `koanf:"comment_density" json:"commentDensity"`
	SubscriberCount         float64 `koanf:"subscriber_count" json:"subscriberCount"`
	QueryDescriptionOverlap float64 `koanf:"query_description_overlap" json:"queryDescriptionOverlap"`
	ViewCount               float64 `koanf:"view_count" json:"viewCount"`
	Freshness               float64 `koanf:"freshness" json:"freshness"`
}

// DefaultWeights weighs all five signals equally.
//
//	composite = 0.2*commentDensity + 0.2*subscribers + 0.2*overlap + 0.2*views + 0.2*freshness
func DefaultWeights() Weights {
	return Weights{
		CommentDensity:          0.20,
		SubscriberCount:         0.20,
		QueryDescriptionOverlap: 0.20,
		ViewCount:               0.20,
		Freshness:               0.20,
	}
}

// Validate checks the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	for _, v := range w.values() {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: NaN weight in %v", ErrInvalidWeights, w.values())
		}
		if v < 0 {
			return fmt.Errorf("%w: negative weight in %v", ErrInvalidWeights, w.values())
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.6f, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w.values() {
		sum += v
	}
	return sum
}

// Score returns the weighted sum of n, clamped to [0,1].
func (w Weights) Score(n model.NormalizedSignals) float64 {
	return clamp01(n.CommentDensity*w.CommentDensity +
		n.SubscriberCount*w.SubscriberCount +
		n.QueryDescriptionOverlap*w.QueryDescriptionOverlap +
		n.ViewCount*w.ViewCount +
		n.Freshness*w.Freshness)
}

func (w Weights) values() [5]float64 {
	return [5]float64{w.CommentDensity, w.SubscriberCount, w.QueryDescriptionOverlap, w.ViewCount, w.Freshness}
}
