package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

const (
	OpenWeatherMapGeoURL = "https://api.openweathermap.org/geo/1.0"

	opGeocode = "geocode"
)

// GeocodingRepository resolves place names through the OpenWeatherMap direct geocoding API.
type GeocodingRepository struct {
	apiKey string
	geoURL string
	client HTTPClient
	l      *logger.Logger
}

func NewGeocodingRepository(cfg ClientConfig) (*GeocodingRepository, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if cfg.HTTPClient == nil {
		return nil, errors.New("HTTP client is required")
	}

	geoURL := cfg.GeoURL
	if geoURL == "" {
		geoURL = OpenWeatherMapGeoURL
	}

	return &GeocodingRepository{
		apiKey: cfg.APIKey,
		geoURL: geoURL,
		client: newBreakerClient("openweathermap-geocode", cfg.HTTPClient, cfg.BreakerTimeout, cfg.Logger),
		l:      orDiscard(cfg.Logger),
	}, nil
}

// Geocode returns at most limit matches in provider order.
func (g *GeocodingRepository) Geocode(ctx context.Context, query string, limit int) ([]models.GeoMatch, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", g.apiKey)

	var response geocodeResponse
	if err := getJSON(ctx, g.client, g.l, opGeocode, endpointURL(g.geoURL, "/direct"), values, &response); err != nil {
		return nil, err
	}

	matches := make([]models.GeoMatch, 0, len(response))
	for _, item := range response {
		matches = append(matches, models.GeoMatch{
			Lat:     *item.Lat,
			Lon:     *item.Lon,
			Name:    item.Name,
			Country: item.Country,
		})
	}

	g.l.Debug("geocoding finished", map[string]any{
		"query":   query,
		"matches": len(matches),
	})

	return matches, nil
}

type geocodeResponse []struct {
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Country string   `json:"country"`
}

func (r *geocodeResponse) validate() error {
	for i, item := range *r {
		if item.Lat == nil {
			return missing(fmt.Sprintf("[%d].lat", i))
		}
		if item.Lon == nil {
			return missing(fmt.Sprintf("[%d].lon", i))
		}
	}
	return nil
}
