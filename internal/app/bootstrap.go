package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"ausjobs/internal/delivery/http/handler"
	"ausjobs/internal/delivery/http/middleware"
	"ausjobs/internal/delivery/http/routes"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		handler.NewRunsHandler(c.Scrapes, c.Store),
	)
	registry.Register(f)

	return &App{Fiber: f}
}

func Bootstrap(c *Container) (*App, func() error, error) {
	app := New(c)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
