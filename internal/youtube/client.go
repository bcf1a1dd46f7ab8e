// Package youtube is a minimal YouTube Data API v3 client covering the three
// calls the search flow needs.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Quota costs in API units.
const (
	QuotaSearch       = 100
	QuotaVideosList   = 1
	QuotaChannelsList = 1
)

// MaxIDsPerRequest is the API limit for videos.list and channels.list.
const MaxIDsPerRequest = 50

const defaultTimeout = 10 * time.Second

var (
	ErrMissingAPIKey = errors.New("youtube: API key is not configured")
	ErrTooManyIDs    = fmt.Errorf("youtube: cannot fetch more than %d ids at once", MaxIDsPerRequest)
	ErrAPI           = errors.New("youtube: API request failed")
)

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *fasthttp.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "youtube-assistant",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// SearchVideoIDs runs search.list for videos matching query. Costs QuotaSearch.
func (c *Client) SearchVideoIDs(ctx context.Context, query string, maxResults int) ([]string, error) {
	var resp searchResponse
	err := c.get(ctx, "search", map[string]string{
		"part":       "snippet",
		"q":          query,
		"type":       "video",
		"maxResults": strconv.Itoa(maxResults),
	}, &resp)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

// VideoDetails runs videos.list for up to MaxIDsPerRequest ids. Costs QuotaVideosList.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxIDsPerRequest {
		return nil, ErrTooManyIDs
	}

	var resp videoListResponse
	err := c.get(ctx, "videos", map[string]string{
		"part": "snippet,statistics,contentDetails,status",
		"id":   strings.Join(ids, ","),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ChannelDetails runs channels.list for up to MaxIDsPerRequest ids. Costs QuotaChannelsList.
func (c *Client) ChannelDetails(ctx context.Context, ids []string) ([]Channel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxIDsPerRequest {
		return nil, ErrTooManyIDs
	}

	var resp channelListResponse
	err := c.get(ctx, "channels", map[string]string{
		"part": "statistics",
		"id":   strings.Join(ids, ","),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) get(ctx context.Context, resource string, params map[string]string, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/" + resource)
	req.Header.SetMethod(fasthttp.MethodGet)
	args := req.URI().QueryArgs()
	for k, v := range params {
		args.Add(k, v)
	}
	args.Add("key", c.apiKey)

	if err := c.http.DoTimeout(req, resp, c.deadline(ctx)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAPI, resource, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		msg := fasthttp.StatusMessage(resp.StatusCode())
		var apiErr errorResponse
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return fmt.Errorf("%w: %s: %d %s", ErrAPI, resource, resp.StatusCode(), msg)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("youtube: decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) deadline(ctx context.Context) time.Duration {
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d < timeout {
			timeout = max(d, time.Millisecond)
		}
	}
	return timeout
}
