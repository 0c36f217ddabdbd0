package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"ausjobs/internal/cache"
	"ausjobs/internal/database"
	"ausjobs/internal/pkg/response"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, c *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if h == nil || app == nil {
		return
	}
	app.Get("/healthz", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := map[string]string{
		"database": "up",
		"cache":    "up",
	}

	if h.db == nil {
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
	}

	// A cold cache degrades dedup, it does not take the service down.
	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "down"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "", checks)
	}
	return response.Success(c, status, response.MessageOK, checks)
}
