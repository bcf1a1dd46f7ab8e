package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency that can report its reachability. *pgxpool.Pool,
// *service.CacheService and *embedding.RemoteEmbedder all satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names a dependency probed by the readiness endpoint. A nil
// Pinger is reported as disabled.
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

type HealthHandler struct {
	checks  []HealthCheck
	startAt time.Time
	version string
}

func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		startAt: time.Now(),
		version: version,
	}
}

// Live handles GET /health/live (liveness probe).
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. Any check that is down makes the service unready.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map, len(h.checks))
	overallStatus := "healthy"

	for _, hc := range h.checks {
		result := check(ctx, hc.Pinger)
		checks[hc.Name] = result
		if result["status"] == "down" {
			overallStatus = "degraded"
		}
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        h.version,
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func check(ctx context.Context, p Pinger) fiber.Map {
	if p == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
