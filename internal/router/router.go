package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/handler"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Search    *handler.SearchHandler
	Feedback  *handler.FeedbackHandler
	Quota     *handler.QuotaHandler
	Analytics *handler.AnalyticsHandler
	Health    *handler.HealthHandler
}

// Limiters holds the per-route rate limiters. Nil limiters are skipped.
type Limiters struct {
	Search *middleware.RateLimiter
	Events *middleware.RateLimiter
	Reads  *middleware.RateLimiter
}

// DefaultLimiters returns the production limits.
func DefaultLimiters() Limiters {
	return Limiters{
		Search: middleware.NewSearchRateLimiter(),
		Events: middleware.NewEventRateLimiter(),
		Reads:  middleware.NewReadRateLimiter(),
	}
}

// Close stops the limiters' background sweepers.
func (l Limiters) Close() {
	for _, rl := range []*middleware.RateLimiter{l.Search, l.Events, l.Reads} {
		if rl != nil {
			rl.Close()
		}
	}
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, rl Limiters, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	api.Post("/search", limit(rl.Search), h.Search.Search)

	api.Post("/feedback", limit(rl.Events), h.Feedback.Submit)
	api.Post("/click", limit(rl.Events), h.Feedback.Click)

	api.Get("/quota", limit(rl.Reads), h.Quota.Get)
	api.Get("/analytics", limit(rl.Reads), h.Analytics.Get)
}

func limit(rl *middleware.RateLimiter) fiber.Handler {
	if rl == nil {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return rl.Handler()
}
