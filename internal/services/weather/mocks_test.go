package weather_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.NewZapLogger("test-app", logger.WithWriters(io.Discard))
}

// MockGeoRepository implements GeoRepository for testing
type MockGeoRepository struct {
	matches   []models.GeoMatch
	err       error
	lastQuery string
	lastLimit int
	callCount atomic.Int32
}

func (m *MockGeoRepository) Geocode(ctx context.Context, query string, limit int) ([]models.GeoMatch, error) {
	m.callCount.Add(1)
	m.lastQuery = query
	m.lastLimit = limit

	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

// MockWeatherRepository implements WeatherRepository for testing
type MockWeatherRepository struct {
	current      models.CurrentConditions
	forecast     models.ForecastSeries
	currentErr   error
	forecastErr  error
	currentDelay time.Duration
	barrier      *fetchBarrier

	currentCalls  atomic.Int32
	forecastCalls atomic.Int32
	forecastDone  atomic.Bool
}

func (m *MockWeatherRepository) Name() string {
	return "mock"
}

func (m *MockWeatherRepository) FetchCurrent(ctx context.Context, coords models.Coordinates) (models.CurrentConditions, error) {
	m.currentCalls.Add(1)

	if err := m.barrier.arrive(ctx); err != nil {
		return models.CurrentConditions{}, err
	}

	if m.currentDelay > 0 {
		select {
		case <-ctx.Done():
			return models.CurrentConditions{}, ctx.Err()
		case <-time.After(m.currentDelay):
		}
	}

	if m.currentErr != nil {
		return models.CurrentConditions{}, m.currentErr
	}
	return m.current, nil
}

func (m *MockWeatherRepository) FetchForecast(ctx context.Context, coords models.Coordinates) (models.ForecastSeries, error) {
	m.forecastCalls.Add(1)
	defer m.forecastDone.Store(true)

	if err := m.barrier.arrive(ctx); err != nil {
		return models.ForecastSeries{}, err
	}

	if m.forecastErr != nil {
		return models.ForecastSeries{}, m.forecastErr
	}
	return m.forecast, nil
}

var (
	errMockUpstream       = errors.New("mock upstream error")
	errFetchNotConcurrent = errors.New("other fetch did not start in time")
)

// fetchBarrier releases its callers only once all of them have arrived.
// A nil barrier lets every caller through.
type fetchBarrier struct {
	wg      sync.WaitGroup
	timeout time.Duration
}

func newFetchBarrier(parties int, timeout time.Duration) *fetchBarrier {
	b := &fetchBarrier{timeout: timeout}
	b.wg.Add(parties)
	return b
}

func (b *fetchBarrier) arrive(ctx context.Context) error {
	if b == nil {
		return nil
	}
	b.wg.Done()

	all := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(all)
	}()

	select {
	case <-all:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.timeout):
		return errFetchNotConcurrent
	}
}

func sample(ts string, temp float64, category, description string) models.WeatherSample {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return models.WeatherSample{
		Timestamp:    t,
		TemperatureC: temp,
		Condition:    models.Condition{Category: category, Description: description},
	}
}

func date(s string) models.CalendarDate {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return models.DateOf(t, time.UTC)
}
