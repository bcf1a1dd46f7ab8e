package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const defaultRemoteTimeout = 10 * time.Second

// RemoteEmbedder calls a text-embeddings-inference style server:
//
//	POST {baseURL}/embed {"inputs": "...", "normalize": true}  ->  [[0.1, ...]]
type RemoteEmbedder struct {
	baseURL string
	model   string
	timeout time.Duration
	client  *fasthttp.Client
}

type embedRequest struct {
	Inputs    string `json:"inputs"`
	Normalize bool   `json:"normalize"`
}

// NewRemoteEmbedder creates a client for the server at baseURL.
func NewRemoteEmbedder(baseURL, model string, timeout time.Duration) *RemoteEmbedder {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		timeout: timeout,
		client: &fasthttp.Client{
			Name:                "youtube-assistant",
			MaxConnsPerHost:     4,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// RemoteLoader returns a Loader that checks the server is healthy before
// handing out the client.
func RemoteLoader(baseURL, model string, timeout time.Duration) Loader {
	return func(ctx context.Context) (TextEmbedder, error) {
		e := NewRemoteEmbedder(baseURL, model, timeout)
		if err := e.Ping(ctx); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Model returns the configured model name.
func (e *RemoteEmbedder) Model() string {
	return e.model
}

// Ping checks GET {baseURL}/health.
func (e *RemoteEmbedder) Ping(ctx context.Context) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(e.baseURL + "/health")
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := e.client.DoTimeout(req, resp, e.deadline(ctx)); err != nil {
		return fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("%w: health returned status %d", ErrModelUnavailable, resp.StatusCode())
	}
	return nil
}

// Embed implements TextEmbedder.
func (e *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if IsBlank(text) {
		return []float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(embedRequest{Inputs: text, Normalize: true})
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(e.baseURL + "/embed")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := e.client.DoTimeout(req, resp, e.deadline(ctx)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: embed returned status %d", ErrModelUnavailable, resp.StatusCode())
	}

	var out [][]float32
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", ErrModelUnavailable)
	}
	return Normalize(out[0]), nil
}

// deadline returns the request timeout, shortened to the context deadline.
func (e *RemoteEmbedder) deadline(ctx context.Context) time.Duration {
	timeout := e.timeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d < timeout {
			timeout = max(d, time.Millisecond)
		}
	}
	return timeout
}
