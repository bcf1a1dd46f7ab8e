package model

import "time"

// Feedback values accepted by the feedback endpoint.
const (
	FeedbackThumbsUp   = "thumbs_up"
	FeedbackThumbsDown = "thumbs_down"
	FeedbackNone       = "none"
)

// QueryHistoryEntry records one executed search.
type QueryHistoryEntry struct {
	QueryID     string    `json:"queryId"`
	Query       string    `json:"query"`
	ExecutedAt  time.Time `json:"executedAt"`
	ResultCount int       `json:"resultCount"`
	TopVideos   []string  `json:"topVideos"` // top 3 video IDs in ranked order
}

// FeedbackEntry is an append-only feedback record. The most recent entry per
// queryId+videoId is authoritative.
type FeedbackEntry struct {
	QueryID        string     `json:"queryId"`
	VideoID        string     `json:"videoId"`
	Feedback       string     `json:"feedback"`
	CompositeScore float64    `json:"compositeScore"`
	RawSignals     RawSignals `json:"rawSignals"`
	FeedbackAt     time.Time  `json:"feedbackAt"`
}

// ClickEvent records a click on a ranked result.
type ClickEvent struct {
	QueryID     string    `json:"queryId"`
	VideoID     string    `json:"videoId"`
	ClickedRank int       `json:"clickedRank"`
	ClickedAt   time.Time `json:"clickedAt"`
}

// QuotaLogEntry is the YouTube API quota consumed on one day.
type QuotaLogEntry struct {
	Date      string `json:"date"` // YYYY-MM-DD
	UnitsUsed int    `json:"unitsUsed"`
}
