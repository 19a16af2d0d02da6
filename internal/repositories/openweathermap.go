package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

const (
	OpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"

	opCurrent  = "current"
	opForecast = "forecast"
)

type OpenWeatherMapRepository struct {
	apiKey   string
	baseURL  string
	current  HTTPClient
	forecast HTTPClient
	l        *logger.Logger
	now      func() time.Time
}

func NewOpenWeatherMapRepository(cfg ClientConfig) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if cfg.HTTPClient == nil {
		return nil, errors.New("HTTP client is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = OpenWeatherMapBaseURL
	}

	return &OpenWeatherMapRepository{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		current:  newBreakerClient("openweathermap-current", cfg.HTTPClient, cfg.BreakerTimeout, cfg.Logger),
		forecast: newBreakerClient("openweathermap-forecast", cfg.HTTPClient, cfg.BreakerTimeout, cfg.Logger),
		l:        orDiscard(cfg.Logger),
		now:      time.Now,
	}, nil
}

func (w *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

func (w *OpenWeatherMapRepository) params(coords models.Coordinates) url.Values {
	values := url.Values{}
	values.Set("lat", formatCoord(coords.Lat))
	values.Set("lon", formatCoord(coords.Lon))
	values.Set("units", "metric")
	values.Set("appid", w.apiKey)
	return values
}

// FetchCurrent calls /weather and requires every field of the current sample.
func (w *OpenWeatherMapRepository) FetchCurrent(ctx context.Context, coords models.Coordinates) (models.CurrentConditions, error) {
	var response currentWeatherResponse
	if err := getJSON(ctx, w.current, w.l, opCurrent, endpointURL(w.baseURL, "/weather"), w.params(coords), &response); err != nil {
		return models.CurrentConditions{}, err
	}

	timestamp := w.now().UTC()
	if response.Dt != nil {
		timestamp = time.Unix(*response.Dt, 0).UTC()
	}

	return models.CurrentConditions{
		Sample: models.WeatherSample{
			Timestamp:    timestamp,
			TemperatureC: *response.Main.Temp,
			FeelsLikeC:   response.Main.FeelsLike,
			HumidityPct:  response.Main.Humidity,
			WindSpeedMS:  response.Wind.Speed,
			PressureHpa:  response.Main.Pressure,
			Condition:    response.Weather[0].condition(),
		},
		PlaceName: response.Name,
		Country:   response.Sys.Country,
	}, nil
}

// FetchForecast calls /forecast and returns the 3 hour samples in provider order.
func (w *OpenWeatherMapRepository) FetchForecast(ctx context.Context, coords models.Coordinates) (models.ForecastSeries, error) {
	var response forecastResponse
	if err := getJSON(ctx, w.forecast, w.l, opForecast, endpointURL(w.baseURL, "/forecast"), w.params(coords), &response); err != nil {
		return models.ForecastSeries{}, err
	}

	w.l.Info("parsed API response", map[string]any{
		"op":    opForecast,
		"items": len(*response.List),
	})

	series := models.ForecastSeries{
		Samples: make([]models.WeatherSample, 0, len(*response.List)),
	}
	if response.City.Timezone != nil {
		series.UTCOffsetSeconds = *response.City.Timezone
		series.HasUTCOffset = true
	}

	for _, item := range *response.List {
		series.Samples = append(series.Samples, models.WeatherSample{
			Timestamp:    time.Unix(*item.Dt, 0).UTC(),
			TemperatureC: *item.Main.Temp,
			Condition:    item.Weather[0].condition(),
		})
	}

	return series, nil
}

type weatherItem struct {
	Main        *string `json:"main"`
	Description *string `json:"description"`
}

func (c weatherItem) condition() models.Condition {
	return models.Condition{Category: *c.Main, Description: *c.Description}
}

func validateWeather(prefix string, items []weatherItem) error {
	if len(items) == 0 {
		return missing(prefix + "weather[0]")
	}
	if items[0].Main == nil {
		return missing(prefix + "weather[0].main")
	}
	if items[0].Description == nil {
		return missing(prefix + "weather[0].description")
	}
	return nil
}

type currentWeatherResponse struct {
	Dt   *int64 `json:"dt"`
	Name string `json:"name"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []weatherItem `json:"weather"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
}

func (r *currentWeatherResponse) validate() error {
	switch {
	case r.Main.Temp == nil:
		return missing("main.temp")
	case r.Main.FeelsLike == nil:
		return missing("main.feels_like")
	case r.Main.Humidity == nil:
		return missing("main.humidity")
	case r.Main.Pressure == nil:
		return missing("main.pressure")
	case r.Wind.Speed == nil:
		return missing("wind.speed")
	}
	return validateWeather("", r.Weather)
}

type forecastResponse struct {
	List *[]struct {
		Dt   *int64 `json:"dt"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []weatherItem `json:"weather"`
	} `json:"list"`
	City struct {
		Timezone *int `json:"timezone"`
	} `json:"city"`
}

func (r *forecastResponse) validate() error {
	if r.List == nil {
		return missing("list")
	}
	for i, item := range *r.List {
		prefix := fmt.Sprintf("list[%d].", i)
		if item.Dt == nil {
			return missing(prefix + "dt")
		}
		if item.Main.Temp == nil {
			return missing(prefix + "main.temp")
		}
		if err := validateWeather(prefix, item.Weather); err != nil {
			return err
		}
	}
	return nil
}
