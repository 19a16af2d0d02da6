package weather

import (
	"time"

	"weather-lookup/internal/models"
)

// Summarize collapses forecast samples into one summary per calendar day in loc.
// The exclude day is dropped, days keep the order in which they first appear
// and at most maxDays summaries are returned. A day's condition is the one of
// its first sample.
func Summarize(samples []models.WeatherSample, exclude models.CalendarDate, maxDays int, loc *time.Location) []models.DailySummary {
	summaries := make([]models.DailySummary, 0, max(maxDays, 0))
	if maxDays <= 0 {
		return summaries
	}

	index := make(map[models.CalendarDate]int)
	for _, sample := range samples {
		date := models.DateOf(sample.Timestamp, loc)
		if date == exclude {
			continue
		}

		i, seen := index[date]
		if !seen {
			if len(summaries) == maxDays {
				continue
			}
			index[date] = len(summaries)
			summaries = append(summaries, models.DailySummary{
				Date:            date,
				MinTemperatureC: sample.TemperatureC,
				MaxTemperatureC: sample.TemperatureC,
				Condition:       sample.Condition,
				SampleCount:     1,
			})
			continue
		}

		day := &summaries[i]
		day.MinTemperatureC = min(day.MinTemperatureC, sample.TemperatureC)
		day.MaxTemperatureC = max(day.MaxTemperatureC, sample.TemperatureC)
		day.SampleCount++
	}

	return summaries
}
