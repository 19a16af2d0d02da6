package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

const currentWeatherJSON = `{
	"coord": {"lon": -0.1276, "lat": 51.5073},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"main": {"temp": 14.2, "feels_like": 13.6, "temp_min": 12.9, "temp_max": 15.3, "pressure": 1016, "humidity": 77},
	"wind": {"speed": 4.6, "deg": 240},
	"dt": 1753455600,
	"sys": {"country": "GB"},
	"name": "London"
}`

const forecastJSON = `{
	"list": [
		{"dt": 1753455600, "main": {"temp": 21.7}, "weather": [{"main": "Clear", "description": "clear sky"}]},
		{"dt": 1753466400, "main": {"temp": 21.9}, "weather": [{"main": "Clouds", "description": "few clouds"}]},
		{"dt": 1753477200, "main": {"temp": 19.8}, "weather": [{"main": "Rain", "description": "light rain"}]}
	],
	"city": {"name": "Venice", "country": "IT", "timezone": 7200}
}`

var london = models.Coordinates{Lat: 51.5073, Lon: -0.1276}

func newTestWeatherRepository(t *testing.T, serverURL string) *OpenWeatherMapRepository {
	t.Helper()

	repo, err := NewOpenWeatherMapRepository(ClientConfig{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		HTTPClient: http.DefaultClient,
		Logger:     logger.NewZapLogger("test-app"),
	})
	require.NoError(t, err)
	return repo
}

func TestNewOpenWeatherMapRepository_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenWeatherMapRepository(ClientConfig{APIKey: " ", HTTPClient: http.DefaultClient})
	assert.Error(t, err)

	_, err = NewOpenWeatherMapRepository(ClientConfig{APIKey: "key"})
	assert.Error(t, err)
}

func TestOpenWeatherMapRepository_Name(t *testing.T) {
	repo := &OpenWeatherMapRepository{}
	assert.Equal(t, "openweathermap", repo.Name())
}

func TestOpenWeatherMapRepository_FetchCurrent_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "51.507300", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.127600", r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentWeatherJSON))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	current, err := repo.FetchCurrent(context.Background(), london)
	require.NoError(t, err)

	assert.Equal(t, "London", current.PlaceName)
	assert.Equal(t, "GB", current.Country)
	assert.Equal(t, time.Unix(1753455600, 0).UTC(), current.Sample.Timestamp)
	assert.InDelta(t, 14.2, current.Sample.TemperatureC, 1e-9)
	require.NotNil(t, current.Sample.FeelsLikeC)
	assert.InDelta(t, 13.6, *current.Sample.FeelsLikeC, 1e-9)
	require.NotNil(t, current.Sample.HumidityPct)
	assert.InDelta(t, 77, *current.Sample.HumidityPct, 1e-9)
	require.NotNil(t, current.Sample.WindSpeedMS)
	assert.InDelta(t, 4.6, *current.Sample.WindSpeedMS, 1e-9)
	require.NotNil(t, current.Sample.PressureHpa)
	assert.InDelta(t, 1016, *current.Sample.PressureHpa, 1e-9)
	assert.Equal(t, models.Condition{Category: "Clouds", Description: "broken clouds"}, current.Sample.Condition)
}

func TestOpenWeatherMapRepository_FetchCurrent_MissingField(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main": {"temp": 14.2, "humidity": 77, "pressure": 1016}, "wind": {"speed": 1}, "weather": [{"main": "Clear", "description": "clear sky"}]}`))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	_, err := repo.FetchCurrent(context.Background(), london)
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "current", upstream.Op)

	var invalid *InvalidPayloadError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "main.feels_like", invalid.Field)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestOpenWeatherMapRepository_FetchCurrent_EmptyWeatherArray(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main": {"temp": 1, "feels_like": 1, "humidity": 1, "pressure": 1}, "wind": {"speed": 1}, "weather": []}`))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	_, err := repo.FetchCurrent(context.Background(), london)

	var invalid *InvalidPayloadError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "weather[0]", invalid.Field)
}

func TestOpenWeatherMapRepository_FetchCurrent_HTTPError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	_, err := repo.FetchCurrent(context.Background(), london)
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Contains(t, err.Error(), "status 401")
}

func TestOpenWeatherMapRepository_FetchForecast_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(forecastJSON))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL+"/")

	series, err := repo.FetchForecast(context.Background(), london)
	require.NoError(t, err)

	require.Len(t, series.Samples, 3)
	assert.True(t, series.HasUTCOffset)
	assert.Equal(t, 7200, series.UTCOffsetSeconds)

	assert.Equal(t, time.Unix(1753455600, 0).UTC(), series.Samples[0].Timestamp)
	assert.InDelta(t, 21.7, series.Samples[0].TemperatureC, 1e-9)
	assert.Equal(t, "Clear", series.Samples[0].Condition.Category)
	assert.Equal(t, "light rain", series.Samples[2].Condition.Description)
	assert.Nil(t, series.Samples[0].FeelsLikeC)
}

func TestOpenWeatherMapRepository_FetchForecast_EmptyList(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list": [], "city": {}}`))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	series, err := repo.FetchForecast(context.Background(), london)
	require.NoError(t, err)
	assert.Empty(t, series.Samples)
	assert.False(t, series.HasUTCOffset)
}

func TestOpenWeatherMapRepository_FetchForecast_InvalidPayload(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"no list", `{"city": {}}`, "list"},
		{"missing dt", `{"list": [{"main": {"temp": 1}, "weather": [{"main": "Clear", "description": "clear sky"}]}]}`, "list[0].dt"},
		{"missing temp", `{"list": [{"dt": 1, "main": {}, "weather": [{"main": "Clear", "description": "clear sky"}]}]}`, "list[0].main.temp"},
		{"missing description", `{"list": [{"dt": 1, "main": {"temp": 1}, "weather": [{"main": "Clear"}]}]}`, "list[0].weather[0].description"},
		{"not json", `invalid json`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer mockServer.Close()

			repo := newTestWeatherRepository(t, mockServer.URL)

			_, err := repo.FetchForecast(context.Background(), london)
			require.Error(t, err)

			var invalid *InvalidPayloadError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestOpenWeatherMapRepository_FetchForecast_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(forecastJSON))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FetchForecast(ctx, london)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestOpenWeatherMapRepository_FetchForecast_TransportError(t *testing.T) {
	repo := newTestWeatherRepository(t, "http://127.0.0.1:1")

	_, err := repo.FetchForecast(context.Background(), london)
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, 0, upstream.StatusCode)
}

func TestOpenWeatherMapRepository_BreakerOpensAfterRepeatedServerErrors(t *testing.T) {
	var hits atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	for i := 0; i < 5; i++ {
		_, err := repo.FetchForecast(context.Background(), london)
		var upstream *UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)
	}

	_, err := repo.FetchForecast(context.Background(), london)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.Equal(t, int32(5), hits.Load())

	// endpoints trip independently
	assert.Equal(t, gobreaker.StateClosed, repo.current.(*breakerClient).State())
}

func TestOpenWeatherMapRepository_ClientErrorsDoNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	for i := 0; i < 7; i++ {
		_, err := repo.FetchCurrent(context.Background(), london)
		require.Error(t, err)
	}
	assert.Equal(t, int32(7), hits.Load())
}

func TestOpenWeatherMapRepository_CallerCancellationDoesNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(forecastJSON))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 7; i++ {
		_, err := repo.FetchForecast(ctx, london)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.False(t, errors.Is(err, gobreaker.ErrOpenState))
	}
	assert.Equal(t, gobreaker.StateClosed, repo.forecast.(*breakerClient).State())

	series, err := repo.FetchForecast(context.Background(), london)
	require.NoError(t, err)
	assert.Len(t, series.Samples, 3)
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestOpenWeatherMapRepository_DeadlineExceededDoesNotTripBreaker(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte(currentWeatherJSON))
	}))
	defer mockServer.Close()

	repo := newTestWeatherRepository(t, mockServer.URL)

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, err := repo.FetchCurrent(ctx, london)
		cancel()
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	}

	assert.Equal(t, gobreaker.StateClosed, repo.current.(*breakerClient).State())
}
