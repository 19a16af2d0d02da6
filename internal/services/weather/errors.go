package weather

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyQuery is returned before any network call when the place query is blank.
	ErrEmptyQuery = errors.New("place query is empty")
	// ErrLocationNotFound means geocoding matched no place.
	ErrLocationNotFound = errors.New("location not found")
	// ErrWeatherUnavailable matches every *WeatherUnavailableError.
	ErrWeatherUnavailable = errors.New("weather data unavailable")
)

// WeatherUnavailableError is returned when either the current conditions or
// the forecast could not be fetched. Err keeps the provider failure.
type WeatherUnavailableError struct {
	Err error
}

func (e *WeatherUnavailableError) Error() string {
	if e.Err == nil {
		return ErrWeatherUnavailable.Error()
	}
	return ErrWeatherUnavailable.Error() + ": " + e.Err.Error()
}

func (e *WeatherUnavailableError) Unwrap() error { return e.Err }

func (e *WeatherUnavailableError) Is(target error) bool { return target == ErrWeatherUnavailable }
