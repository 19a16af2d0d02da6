package models

// WeatherView is everything a presentation layer needs for one lookup.
// It is built per request and never mutated afterwards.
type WeatherView struct {
	Location ResolvedLocation
	Current  CurrentConditions
	Upcoming []DailySummary
}
