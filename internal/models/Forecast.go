package models

import (
	"fmt"
	"time"
)

// CalendarDate is a civil date without a time zone.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t as observed in loc. A nil loc means UTC.
func DateOf(t time.Time, loc *time.Location) CalendarDate {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Time returns midnight of the date in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DailySummary is the aggregate of all forecast samples falling on one day.
type DailySummary struct {
	Date            CalendarDate
	MinTemperatureC float64
	MaxTemperatureC float64
	Condition       Condition
	SampleCount     int
}
