package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/embedding"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/model"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/service"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/youtube"
)

type stubSearcher struct {
	got  string
	resp *model.SearchResponse
	err  error
}

func (s *stubSearcher) Search(_ context.Context, q string) (*model.SearchResponse, error) {
	s.got = q
	return s.resp, s.err
}

type stubEvents struct {
	feedback []model.FeedbackRequest
	clicks   []model.ClickRequest
	err      error
}

func (s *stubEvents) Submit(_ context.Context, req model.FeedbackRequest) error {
	s.feedback = append(s.feedback, req)
	return s.err
}

func (s *stubEvents) RecordClick(_ context.Context, req model.ClickRequest) error {
	s.clicks = append(s.clicks, req)
	return s.err
}

type stubAnalytics struct{}

func (stubAnalytics) Compute(_ context.Context, period string) (*model.AnalyticsResponse, error) {
	p, _, err := service.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return &model.AnalyticsResponse{Period: p, TimeSeries: []model.TimeSeriesDataPoint{}}, nil
}

type stubQuota struct{ used int }

func (s stubQuota) Today(context.Context) (*model.QuotaResponse, error) {
	return &model.QuotaResponse{UnitsUsedToday: s.used, DailyLimit: 10000, PercentUsed: float64(s.used) / 100}, nil
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestSearchHandler(t *testing.T) {
	ok := &model.SearchResponse{
		QueryID:        "q_abcd1234",
		Results:        []model.RankedResult{{VideoID: "v1", CompositeScore: 0.7}},
		QuotaUnitsUsed: 102,
	}

	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"ok", `{"query":"  go generics "}`, nil, http.StatusOK, ""},
		{"malformed json", `{"query":`, nil, http.StatusBadRequest, "INVALID_BODY"},
		{"blank query", `{"query":"   "}`, nil, http.StatusBadRequest, "INVALID_FIELD"},
		{"no api key", `{"query":"go"}`, fmt.Errorf("search videos: %w", youtube.ErrMissingAPIKey), http.StatusServiceUnavailable, "YOUTUBE_NOT_CONFIGURED"},
		{"model down", `{"query":"go"}`, fmt.Errorf("rank: %w", embedding.ErrModelUnavailable), http.StatusServiceUnavailable, "MODEL_UNAVAILABLE"},
		{"upstream", `{"query":"go"}`, fmt.Errorf("video details: %w", youtube.ErrAPI), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"unexpected", `{"query":"go"}`, errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSearcher{resp: ok, err: tt.err}
			app := fiber.New()
			app.Post("/api/search", NewSearchHandler(svc).Search)

			code, body := do(t, app, http.MethodPost, "/api/search", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantErr, errorCode(body))
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "go generics", svc.got)
				assert.Equal(t, "q_abcd1234", body["queryId"])
				assert.EqualValues(t, 102, body["quotaUnitsUsed"])
				assert.Len(t, body["results"], 1)
			}
		})
	}
}

func TestFeedbackHandler_Submit(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"ok", `{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ","feedback":"thumbs_up","compositeScore":0.62}`, http.StatusOK, ""},
		{"clear", `{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ","feedback":"none"}`, http.StatusOK, ""},
		{"bad query id", `{"queryId":"abc","videoId":"dQw4w9WgXcQ","feedback":"thumbs_up"}`, http.StatusBadRequest, "INVALID_FIELD"},
		{"bad video id", `{"queryId":"q_abcd1234","videoId":"a b","feedback":"thumbs_up"}`, http.StatusBadRequest, "INVALID_FIELD"},
		{"bad feedback", `{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ","feedback":"love"}`, http.StatusBadRequest, "INVALID_FIELD"},
		{"score out of range", `{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ","feedback":"thumbs_up","compositeScore":3}`, http.StatusBadRequest, "INVALID_FIELD"},
		{"not json", `feedback`, http.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubEvents{}
			app := fiber.New()
			app.Post("/api/feedback", NewFeedbackHandler(svc).Submit)

			code, body := do(t, app, http.MethodPost, "/api/feedback", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantErr, errorCode(body))
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, true, body["success"])
				require.Len(t, svc.feedback, 1)
			} else {
				assert.Empty(t, svc.feedback)
			}
		})
	}
}

func TestFeedbackHandler_StoreFailure(t *testing.T) {
	app := fiber.New()
	app.Post("/api/feedback", NewFeedbackHandler(&stubEvents{err: errors.New("db down")}).Submit)

	code, body := do(t, app, http.MethodPost, "/api/feedback",
		`{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ","feedback":"thumbs_down"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(body))
}

func TestFeedbackHandler_Click(t *testing.T) {
	svc := &stubEvents{}
	app := fiber.New()
	app.Post("/api/click", NewFeedbackHandler(svc).Click)

	code, _ := do(t, app, http.MethodPost, "/api/click", `{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ","clickedRank":0}`)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, svc.clicks, 1)
	require.NotNil(t, svc.clicks[0].ClickedRank)
	assert.Equal(t, 0, *svc.clicks[0].ClickedRank)

	code, body := do(t, app, http.MethodPost, "/api/click", `{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_FIELD", errorCode(body))

	code, _ = do(t, app, http.MethodPost, "/api/click", `{"queryId":"q_abcd1234","videoId":"dQw4w9WgXcQ","clickedRank":-1}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuotaHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/api/quota", NewQuotaHandler(stubQuota{used: 306}).Get)

	code, body := do(t, app, http.MethodGet, "/api/quota", "")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 306, body["unitsUsedToday"])
	assert.EqualValues(t, 10000, body["dailyLimit"])
}

func TestAnalyticsHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/api/analytics", NewAnalyticsHandler(stubAnalytics{}).Get)

	code, body := do(t, app, http.MethodGet, "/api/analytics", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "7d", body["period"])

	code, body = do(t, app, http.MethodGet, "/api/analytics?period=90d", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "90d", body["period"])

	code, body = do(t, app, http.MethodGet, "/api/analytics?period=1y", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PERIOD", errorCode(body))
}

func TestHealthHandler_Ready(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("refused") })

	tests := []struct {
		name       string
		checks     []HealthCheck
		wantCode   int
		wantStatus string
	}{
		{"all up", []HealthCheck{{"database", up}, {"redis", up}}, http.StatusOK, "healthy"},
		{"redis disabled", []HealthCheck{{"database", up}, {"redis", nil}}, http.StatusOK, "healthy"},
		{"database down", []HealthCheck{{"database", down}, {"redis", up}}, http.StatusServiceUnavailable, "degraded"},
		{"model down", []HealthCheck{{"database", up}, {"embedding", down}}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("test", tt.checks...)
			app := fiber.New()
			app.Get("/health/ready", h.Ready)
			app.Get("/health/live", h.Live)

			code, body := do(t, app, http.MethodGet, "/health/ready", "")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, body["status"])
			checks, _ := body["checks"].(map[string]any)
			assert.Len(t, checks, len(tt.checks))

			code, _ = do(t, app, http.MethodGet, "/health/live", "")
			assert.Equal(t, http.StatusOK, code)
		})
	}
}

func TestSanitizeEndpoint(t *testing.T) {
	assert.Equal(t, "/api/search", sanitizeEndpoint("/api/search"))
	assert.Equal(t, "other", sanitizeEndpoint("/api/search/extra"))
	assert.Equal(t, "other", sanitizeEndpoint("/wp-admin"))
}
