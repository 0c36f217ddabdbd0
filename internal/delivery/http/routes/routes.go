package routes

import (
	"github.com/gofiber/fiber/v3"

	"ausjobs/internal/delivery/http/handler"
)

type Registry struct {
	health *handler.HealthHandler
	runs   *handler.RunsHandler
}

func NewRegistry(health *handler.HealthHandler, runs *handler.RunsHandler) *Registry {
	return &Registry{health: health, runs: runs}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	r.runs.RegisterRoutes(api.Group("/v1"))
}
