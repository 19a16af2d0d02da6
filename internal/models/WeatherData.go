package models

import "time"

// Condition is the provider's weather category (e.g. "Clear") and its free text description.
type Condition struct {
	Category    string `json:"category" example:"Clouds"`
	Description string `json:"description" example:"broken clouds"`
}

// WeatherSample is a single reading. Optional fields are nil when the
// provider payload they came from does not carry them.
type WeatherSample struct {
	Timestamp    time.Time
	TemperatureC float64
	FeelsLikeC   *float64
	HumidityPct  *float64
	WindSpeedMS  *float64
	PressureHpa  *float64
	Condition    Condition
}

// CurrentConditions is the current weather sample plus the provider's own
// name for the place it was observed at.
type CurrentConditions struct {
	Sample    WeatherSample
	PlaceName string
	Country   string
}

// ForecastSeries is the interval forecast for one location.
type ForecastSeries struct {
	Samples []WeatherSample
	// UTCOffsetSeconds is the forecast location's offset from UTC, valid when HasUTCOffset is set.
	UTCOffsetSeconds int
	HasUTCOffset     bool
}

// Zone returns the forecast location's fixed zone, or UTC if the provider did not report one.
func (f ForecastSeries) Zone() *time.Location {
	if !f.HasUTCOffset {
		return time.UTC
	}
	return time.FixedZone("", f.UTCOffsetSeconds)
}
