package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-lookup/docs"
	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
	"weather-lookup/pkg/observe"
)

// WeatherService is what the handlers need from the weather service.
type WeatherService interface {
	FetchByPlace(ctx context.Context, query string) (models.WeatherView, error)
	FetchByCoordinates(ctx context.Context, coords models.Coordinates, displayName string) (models.WeatherView, error)
}

type routes struct {
	service      WeatherService
	defaultPlace string
	l            *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService WeatherService,
	defaultPlace string,
	l *logger.Logger,
) {
	r := &routes{
		service:      weatherService,
		defaultPlace: defaultPlace,
		l:            l,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "doc.json",
		DeepLinking: true,
	}))

	app.Get("/metrics", observe.MetricsHandler())

	// API routes
	app.Get("/weather", r.handleWeatherCall)
}
