package ranking

import (
	"time"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

// Extract builds the raw signals for one candidate. ch may be nil when the
// channel lookup missed. similarity is the precomputed query/description score.
func Extract(c model.Candidate, ch *model.ChannelInfo, similarity float64, now time.Time) model.RawSignals {
	views := max(c.ViewCount, 1)

	return model.RawSignals{
		CommentDensity:          float64(c.CommentCount) / float64(views),
		SubscriberCount:         float64(subscribers(ch)),
		QueryDescriptionOverlap: similarity,
		ViewCount:               float64(views),
		Freshness:               ageDays(c.PublishedAt, now),
	}
}

// subscribers returns 0 for a missing channel or a hidden subscriber count.
func subscribers(ch *model.ChannelInfo) int64 {
	if ch == nil || ch.HiddenSubscriberCount {
		return 0
	}
	return max(ch.SubscriberCount, 0)
}

// ageDays returns fractional days since publishedAt; future timestamps clamp to 0.
func ageDays(publishedAt, now time.Time) float64 {
	return max(0, now.Sub(publishedAt).Hours()/24)
}
