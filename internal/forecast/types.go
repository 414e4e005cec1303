package forecast

import "time"

// Sample is one raw forecast entry from the upstream provider, at sub-daily
// granularity (OpenWeatherMap emits one every three hours).
type Sample struct {
	Timestamp   time.Time
	Description string
	TempC       float64
}

// DayFeature is the normalized per-day feature record fed to the demand
// models. DayOfWeek uses the Monday=0 .. Sunday=6 convention the models were
// trained with.
type DayFeature struct {
	Date        time.Time `json:"date"`
	AvgTempC    float64   `json:"avg_temp_c"`
	DayOfWeek   int       `json:"day_of_week"`
	Month       int       `json:"month"`
	WeatherCode int       `json:"weather_code"`
}

// DayOf truncates a timestamp to its calendar date, re-based to UTC midnight
// so date equality and range checks are exact across packages.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekdayMon0 converts Go's Sunday=0 weekday to the Monday=0 convention.
func WeekdayMon0(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
