package ranking

import (
	"math"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

// Fixed scales for the non batch-relative signals.
const (
	MaxSubscriberCount = 50_000_000    // saturates near 1.0 for the largest creators
	MaxViewCount       = 1_000_000_000 // 1B views
	MaxAgeDays         = 3650          // 10 years
)

var (
	logMaxSubscribers = math.Log10(MaxSubscriberCount)
	logMaxViews       = math.Log10(MaxViewCount)
)

// CommentDensityRange returns the batch min and max comment density. An empty
// batch returns 0, 0.
func CommentDensityRange(raw []model.RawSignals) (lo, hi float64) {
	if len(raw) == 0 {
		return 0, 0
	}
	lo, hi = raw[0].CommentDensity, raw[0].CommentDensity
	for _, r := range raw[1:] {
		lo = math.Min(lo, r.CommentDensity)
		hi = math.Max(hi, r.CommentDensity)
	}
	return lo, hi
}

// Normalize rescales raw into [0,1]. minCD and maxCD must come from the whole
// surviving batch; when they are equal comment density normalizes to 0.
func Normalize(raw model.RawSignals, minCD, maxCD float64) model.NormalizedSignals {
	var cd float64
	if spread := maxCD - minCD; spread > 0 {
		cd = (raw.CommentDensity - minCD) / spread
	}

	return model.NormalizedSignals{
		CommentDensity:          clamp01(cd),
		SubscriberCount:         clamp01(math.Log10(raw.SubscriberCount+1) / logMaxSubscribers),
		QueryDescriptionOverlap: clamp01(raw.QueryDescriptionOverlap),
		ViewCount:               clamp01(math.Log10(raw.ViewCount+1) / logMaxViews),
		Freshness:               clamp01(1 - raw.Freshness/MaxAgeDays),
	}
}
