package models

import "time"

// DailyWeather is one observed (or forecast-derived) weather row per calendar
// date, written by the collector job and consumed offline for model training.
type DailyWeather struct {
	RecordDate  time.Time `gorm:"column:record_date;type:date;primaryKey"`
	AvgTempC    float64   `gorm:"column:avg_temp_c;not null"`
	DayOfWeek   int       `gorm:"column:day_of_week;not null"`
	Month       int       `gorm:"column:month;not null"`
	WeatherCode int       `gorm:"column:weather_code;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the table name stable regardless of GORM pluralization.
func (DailyWeather) TableName() string {
	return "daily_weather"
}
