package youtube

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
)

func newTestClient(t *testing.T, apiKey string, handler fasthttp.RequestHandler) *Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	c := NewClient(apiKey, "http://youtube.local/v3/", time.Second)
	c.http.Dial = func(string) (net.Conn, error) { return ln.Dial() }
	return c
}

const videoJSON = `{"items":[{
  "id":"vid1",
  "snippet":{
    "title":"Learn Go","description":"A tour of Go","channelId":"UC1","channelTitle":"Gopher",
    "publishedAt":"2025-01-02T03:04:05Z",
    "thumbnails":{"default":{"url":"d.jpg"},"medium":{"url":"m.jpg"}},
    "liveBroadcastContent":"none"
  },
  "statistics":{"viewCount":"12345","commentCount":"67"},
  "contentDetails":{"duration":"PT38M12S"},
  "status":{"madeForKids":false}
},{
  "id":"vid2",
  "snippet":{"title":"Stream","channelId":"UC2","publishedAt":"bad","liveBroadcastContent":"live"},
  "statistics":{"viewCount":"7"},
  "contentDetails":{"duration":"P0D"},
  "status":{"madeForKids":true}
}]}`

func TestSearchVideoIDs(t *testing.T) {
	var gotQuery, gotKey, gotPath string
	c := newTestClient(t, "secret", func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Path())
		gotQuery = string(ctx.QueryArgs().Peek("q"))
		gotKey = string(ctx.QueryArgs().Peek("key"))
		ctx.SetBodyString(`{"items":[{"id":{"videoId":"a"}},{"id":{"kind":"youtube#channel"}},{"id":{"videoId":"b"}}]}`)
	})

	ids, err := c.SearchVideoIDs(context.Background(), "go tutorial", 50)
	if err != nil {
		t.Fatalf("SearchVideoIDs: %v", err)
	}
	if gotPath != "/v3/search" || gotQuery != "go tutorial" || gotKey != "secret" {
		t.Errorf("request path=%q q=%q key=%q", gotPath, gotQuery, gotKey)
	}
	if strings.Join(ids, ",") != "a,b" {
		t.Errorf("ids = %v, want [a b]", ids)
	}
}

func TestVideoDetails_Conversion(t *testing.T) {
	c := newTestClient(t, "secret", func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(videoJSON)
	})

	videos, err := c.VideoDetails(context.Background(), []string{"vid1", "vid2"})
	if err != nil {
		t.Fatalf("VideoDetails: %v", err)
	}
	cands := Candidates(videos)
	if len(cands) != 2 {
		t.Fatalf("len = %d, want 2", len(cands))
	}

	got := cands[0]
	want := model.Candidate{
		VideoID:      "vid1",
		Title:        "Learn Go",
		ChannelID:    "UC1",
		ChannelTitle: "Gopher",
		Description:  "A tour of Go",
		ThumbnailURL: "m.jpg",
		PublishedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:     "PT38M12S",
		ViewCount:    12345,
		CommentCount: 67,
		LiveStatus:   model.LiveStatusNone,
	}
	if !got.PublishedAt.Equal(want.PublishedAt) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, want.PublishedAt)
	}
	got.PublishedAt = want.PublishedAt
	if got != want {
		t.Errorf("candidate = %+v\nwant %+v", got, want)
	}

	second := cands[1]
	if second.CommentCount != 0 || !second.PublishedAt.IsZero() || !second.MadeForKids || second.LiveStatus != model.LiveStatusLive {
		t.Errorf("second candidate = %+v", second)
	}
}

func TestVideoDetails_Limits(t *testing.T) {
	called := false
	c := newTestClient(t, "secret", func(ctx *fasthttp.RequestCtx) { called = true })

	ids := make([]string, MaxIDsPerRequest+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%d", i)
	}
	if _, err := c.VideoDetails(context.Background(), ids); !errors.Is(err, ErrTooManyIDs) {
		t.Errorf("err = %v, want ErrTooManyIDs", err)
	}
	if _, err := c.ChannelDetails(context.Background(), ids); !errors.Is(err, ErrTooManyIDs) {
		t.Errorf("err = %v, want ErrTooManyIDs", err)
	}

	videos, err := c.VideoDetails(context.Background(), nil)
	if err != nil || len(videos) != 0 {
		t.Errorf("empty ids = %v, %v", videos, err)
	}
	if called {
		t.Error("limit checks should not reach the API")
	}
}

func TestChannelDetails(t *testing.T) {
	c := newTestClient(t, "secret", func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"items":[
			{"id":"UC1","statistics":{"subscriberCount":"50000000","hiddenSubscriberCount":false}},
			{"id":"UC2","statistics":{"hiddenSubscriberCount":true}}
		]}`)
	})

	channels, err := c.ChannelDetails(context.Background(), []string{"UC1", "UC2"})
	if err != nil {
		t.Fatalf("ChannelDetails: %v", err)
	}
	m := ChannelMap(channels)
	if m["UC1"].SubscriberCount != 50_000_000 {
		t.Errorf("UC1 subscribers = %d", m["UC1"].SubscriberCount)
	}
	if !m["UC2"].HiddenSubscriberCount || m["UC2"].SubscriberCount != 0 {
		t.Errorf("UC2 = %+v", m["UC2"])
	}
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, "secret", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusForbidden)
		ctx.SetBodyString(`{"error":{"code":403,"message":"quotaExceeded"}}`)
	})

	_, err := c.SearchVideoIDs(context.Background(), "q", 50)
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("err = %v, want ErrAPI", err)
	}
	if !strings.Contains(err.Error(), "quotaExceeded") {
		t.Errorf("err = %v, want API message", err)
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	c := newTestClient(t, "", func(ctx *fasthttp.RequestCtx) {})
	if _, err := c.SearchVideoIDs(context.Background(), "q", 50); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"", 0},
		{"-5", 0},
		{"1e6", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
