package repositories

import (
	"context"
	"net/http"
	"time"

	"weather-lookup/config"
	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository fetches current conditions and the interval forecast for a point.
type WeatherRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, coords models.Coordinates) (models.CurrentConditions, error)
	FetchForecast(ctx context.Context, coords models.Coordinates) (models.ForecastSeries, error)
}

// GeoRepository looks up places by free text. An empty result means no match.
type GeoRepository interface {
	Geocode(ctx context.Context, query string, limit int) ([]models.GeoMatch, error)
}

// ClientConfig holds what every OpenWeatherMap repository needs.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	GeoURL  string
	// BreakerTimeout is how long a tripped endpoint stays open.
	BreakerTimeout time.Duration
	HTTPClient     HTTPClient
	Logger         *logger.Logger
}

// Repositories are the provider clients the weather service depends on.
type Repositories struct {
	Weather *OpenWeatherMapRepository
	Geo     *GeocodingRepository
}

func InitWeatherRepositories(cfg *config.Config, l *logger.Logger) (Repositories, error) {
	cc := ClientConfig{
		APIKey:         cfg.Provider.APIKey,
		BaseURL:        cfg.Provider.BaseURL,
		GeoURL:         cfg.Provider.GeoURL,
		BreakerTimeout: cfg.Provider.BreakerTimeout,
		HTTPClient:     &http.Client{Timeout: cfg.Provider.Timeout},
		Logger:         l,
	}

	weather, err := NewOpenWeatherMapRepository(cc)
	if err != nil {
		return Repositories{}, err
	}

	geo, err := NewGeocodingRepository(cc)
	if err != nil {
		return Repositories{}, err
	}

	return Repositories{Weather: weather, Geo: geo}, nil
}
