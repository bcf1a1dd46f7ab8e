package ranking

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/embedding"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

const epsilon = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeEmbedder returns canned vectors and records every text it embeds.
type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	calls   []string
	err     error
}

func newFakeEmbedder(vectors map[string][]float32) *fakeEmbedder {
	return &fakeEmbedder{vectors: vectors}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	if embedding.IsBlank(text) {
		return []float32{}, nil
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	// Unknown text is orthogonal to everything in the fixture set.
	return []float32{0, 0, 0, 1}, nil
}

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var errFakeModel = errors.New("fake model down")

func candidate(id string) model.Candidate {
	return model.Candidate{
		VideoID:      id,
		Title:        "Video " + id,
		ChannelID:    "UC" + id,
		ChannelTitle: "Channel " + id,
		Description:  "description " + id,
		PublishedAt:  fixedNow.AddDate(0, 0, -30),
		Duration:     "PT10M",
		ViewCount:    10_000,
		CommentCount: 100,
		LiveStatus:   model.LiveStatusNone,
	}
}
