package presenter

import (
	"math"
	"time"

	"weather-lookup/internal/models"
)

// DayLabelLayout formats forecast day labels, e.g. "Tue, Jan 2".
const DayLabelLayout = "Mon, Jan 2"

// WeatherResponse is the JSON body returned for a successful lookup.
type WeatherResponse struct {
	Location LocationView  `json:"location"`
	Current  CurrentView   `json:"current"`
	Forecast []ForecastDay `json:"forecast"`
}

type LocationView struct {
	Name string  `json:"name" example:"London, GB"`
	Lat  float64 `json:"lat" example:"51.5073"`
	Lon  float64 `json:"lon" example:"-0.1276"`
}

// CurrentView holds current conditions in display units.
type CurrentView struct {
	Temperature int    `json:"temperature" example:"14"`
	FeelsLike   *int   `json:"feels_like,omitempty" example:"13"`
	Humidity    *int   `json:"humidity,omitempty" example:"77"`
	WindKmh     *int   `json:"wind_kmh,omitempty" example:"17"`
	PressureHpa *int   `json:"pressure_hpa,omitempty" example:"1016"`
	Condition   string `json:"condition" example:"Clouds"`
	Description string `json:"description" example:"broken clouds"`
	Icon        string `json:"icon" example:"fas fa-cloud"`
	ObservedAt  string `json:"observed_at" example:"2025-07-25T15:00:00Z"`
}

type ForecastDay struct {
	Date        string `json:"date" example:"2025-07-26"`
	Label       string `json:"label" example:"Sat, Jul 26"`
	High        int    `json:"high" example:"23"`
	Low         int    `json:"low" example:"15"`
	Condition   string `json:"condition" example:"Rain"`
	Description string `json:"description" example:"light rain"`
	Icon        string `json:"icon" example:"fas fa-cloud-rain"`
}

// Present converts a WeatherView into its display form.
func Present(view models.WeatherView) WeatherResponse {
	sample := view.Current.Sample

	current := CurrentView{
		Temperature: round(sample.TemperatureC),
		FeelsLike:   roundPtr(sample.FeelsLikeC, 1),
		Humidity:    roundPtr(sample.HumidityPct, 1),
		WindKmh:     roundPtr(sample.WindSpeedMS, 3.6),
		PressureHpa: roundPtr(sample.PressureHpa, 1),
		Condition:   sample.Condition.Category,
		Description: sample.Condition.Description,
		Icon:        IconFor(sample.Condition.Category),
	}
	if !sample.Timestamp.IsZero() {
		current.ObservedAt = sample.Timestamp.UTC().Format(time.RFC3339)
	}

	forecast := make([]ForecastDay, 0, len(view.Upcoming))
	for _, day := range view.Upcoming {
		forecast = append(forecast, ForecastDay{
			Date:        day.Date.String(),
			Label:       day.Date.Time(time.UTC).Format(DayLabelLayout),
			High:        round(day.MaxTemperatureC),
			Low:         round(day.MinTemperatureC),
			Condition:   day.Condition.Category,
			Description: day.Condition.Description,
			Icon:        IconFor(day.Condition.Category),
		})
	}

	return WeatherResponse{
		Location: LocationView{
			Name: locationName(view),
			Lat:  view.Location.Coordinates.Lat,
			Lon:  view.Location.Coordinates.Lon,
		},
		Current:  current,
		Forecast: forecast,
	}
}

// locationName prefers the resolved name and falls back to the provider's own.
func locationName(view models.WeatherView) string {
	if view.Location.DisplayName != "" {
		return view.Location.DisplayName
	}

	place, country := view.Current.PlaceName, view.Current.Country
	switch {
	case place == "":
		return country
	case country == "":
		return place
	default:
		return place + ", " + country
	}
}

// round sends halves toward +Inf, so -2.5 shows as -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func roundPtr(v *float64, factor float64) *int {
	if v == nil {
		return nil
	}
	r := round(*v * factor)
	return &r
}
