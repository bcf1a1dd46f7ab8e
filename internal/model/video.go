package model

import "time"

// LiveStatus mirrors YouTube's liveBroadcastContent field.
type LiveStatus string

const (
	LiveStatusNone     LiveStatus = "none"
	LiveStatusLive     LiveStatus = "live"
	LiveStatusUpcoming LiveStatus = "upcoming"
)

// Candidate is a video competing for rank. It is read-only input to the
// ranking engine.
type Candidate struct {
	VideoID      string     `json:"videoId"`
	Title        string     `json:"title"`
	ChannelID    string     `json:"channelId"`
	ChannelTitle string     `json:"channelTitle,omitempty"`
	Description  string     `json:"description"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	PublishedAt  time.Time  `json:"publishedAt"`
	Duration     string     `json:"duration"` // e.g. "PT38M12S"
	ViewCount    int64      `json:"viewCount"`
	CommentCount int64      `json:"commentCount"`
	MadeForKids  bool       `json:"madeForKids"`
	LiveStatus   LiveStatus `json:"liveStatus"`
}
