package youtube

import (
	"strconv"
	"time"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []Video `json:"items"`
}

type channelListResponse struct {
	Items []Channel `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// Video is a videos.list item. Counts arrive as decimal strings.
type Video struct {
	ID      string `json:"id"`
	Snippet struct {
		Title                string               `json:"title"`
		Description          string               `json:"description"`
		ChannelID            string               `json:"channelId"`
		ChannelTitle         string               `json:"channelTitle"`
		PublishedAt          string               `json:"publishedAt"`
		Thumbnails           map[string]thumbnail `json:"thumbnails"`
		LiveBroadcastContent string               `json:"liveBroadcastContent"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Status struct {
		MadeForKids bool `json:"madeForKids"`
	} `json:"status"`
}

// Channel is a channels.list item.
type Channel struct {
	ID         string `json:"id"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	} `json:"statistics"`
}

// Candidate converts v for ranking. Missing or malformed counts become 0 and
// a missing live status means the video is not a broadcast.
func (v Video) Candidate() model.Candidate {
	published, _ := time.Parse(time.RFC3339, v.Snippet.PublishedAt)

	live := model.LiveStatus(v.Snippet.LiveBroadcastContent)
	if live == "" {
		live = model.LiveStatusNone
	}

	return model.Candidate{
		VideoID:      v.ID,
		Title:        v.Snippet.Title,
		ChannelID:    v.Snippet.ChannelID,
		ChannelTitle: v.Snippet.ChannelTitle,
		Description:  v.Snippet.Description,
		ThumbnailURL: v.thumbnailURL(),
		PublishedAt:  published,
		Duration:     v.ContentDetails.Duration,
		ViewCount:    parseCount(v.Statistics.ViewCount),
		CommentCount: parseCount(v.Statistics.CommentCount),
		MadeForKids:  v.Status.MadeForKids,
		LiveStatus:   live,
	}
}

func (v Video) thumbnailURL() string {
	for _, size := range []string{"medium", "high", "default"} {
		if t, ok := v.Snippet.Thumbnails[size]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ""
}

// Info converts c for ranking.
func (c Channel) Info() model.ChannelInfo {
	return model.ChannelInfo{
		ChannelID:             c.ID,
		SubscriberCount:       parseCount(c.Statistics.SubscriberCount),
		HiddenSubscriberCount: c.Statistics.HiddenSubscriberCount,
	}
}

// Candidates converts a videos.list page.
func Candidates(videos []Video) []model.Candidate {
	out := make([]model.Candidate, len(videos))
	for i, v := range videos {
		out[i] = v.Candidate()
	}
	return out
}

// ChannelMap indexes channels by ID.
func ChannelMap(channels []Channel) map[string]model.ChannelInfo {
	m := make(map[string]model.ChannelInfo, len(channels))
	for _, c := range channels {
		m[c.ID] = c.Info()
	}
	return m
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
