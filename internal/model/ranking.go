package model

// RawSignals are the unnormalized measurements extracted for one candidate.
type RawSignals struct {
	CommentDensity          float64 `json:"commentDensity"`
	SubscriberCount         float64 `json:"subscriberCount"`
	QueryDescriptionOverlap float64 `json:"queryDescriptionOverlap"`
	ViewCount               float64 `json:"viewCount"`
	Freshness               float64 `json:"freshness"` // age in days
}

// NormalizedSignals are RawSignals rescaled into [0,1].
type NormalizedSignals struct {
	CommentDensity          float64 `json:"commentDensity"`
	SubscriberCount         float64 `json:"subscriberCount"`
	QueryDescriptionOverlap float64 `json:"queryDescriptionOverlap"`
	ViewCount               float64 `json:"viewCount"`
	Freshness               float64 `json:"freshness"`
}

// RankedResult is one scored candidate with its full score breakdown, so a
// consumer can explain the score without recomputing it.
type RankedResult struct {
	VideoID           string            `json:"videoId"`
	Title             string            `json:"title"`
	ChannelTitle      string            `json:"channelTitle"`
	ChannelID         string            `json:"channelId"`
	Description       string            `json:"description"`
	ThumbnailURL      string            `json:"thumbnailUrl"`
	PublishedAt       string            `json:"publishedAt"`
	DurationSeconds   int               `json:"durationSeconds"`
	ViewCount         int64             `json:"viewCount"`
	CommentCount      int64             `json:"commentCount"`
	SubscriberCount   int64             `json:"subscriberCount"`
	CompositeScore    float64           `json:"compositeScore"`
	RawSignals        RawSignals        `json:"rawSignals"`
	NormalizedSignals NormalizedSignals `json:"normalizedSignals"`

	// SourceIndex is the candidate's position in the caller's unfiltered input.
	SourceIndex int `json:"sourceIndex"`
}
