package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-widget/docs"
	"weather-widget/internal/presentation"
	"weather-widget/internal/services/lookup"
	"weather-widget/pkg/logger"
)

type routes struct {
	controller *lookup.Controller
	renderer   *presentation.Renderer
	loc        *time.Location
	l          *logger.Logger
}

func NewRouter(
	app *fiber.App,
	controller *lookup.Controller,
	renderer *presentation.Renderer,
	loc *time.Location,
	l *logger.Logger,
) {
	r := &routes{
		controller: controller,
		renderer:   renderer,
		loc:        loc,
		l:          l,
	}

	app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: true,
	}))

	// Widget page
	app.Get("/", r.handleIndex)
	app.Post("/search", r.handleSearchForm)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/state", r.handleState)
	api.Post("/search", r.handleSearch)
	api.Post("/locate", r.handleLocate)
}
