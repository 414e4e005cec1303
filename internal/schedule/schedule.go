package schedule

import (
	"time"

	"github.com/brewplanhq/brewplan-backend/internal/forecast"
	"github.com/brewplanhq/brewplan-backend/pkg/config"
)

// Slot is one recurring weekly order opportunity. Weekday uses Monday=0.
// The offsets bound the inclusive coverage window relative to the order date:
// with next-day delivery a slot starts covering at +1, and ends at the last
// day before the following slot's delivery arrives.
type Slot struct {
	Weekday     int
	Label       string
	StartOffset int
	EndOffset   int
}

// Window is the concrete order date and coverage range computed for a slot.
type Window struct {
	OrderDate     time.Time `json:"order_date"`
	Label         string    `json:"label"`
	CoverageStart time.Time `json:"coverage_start"`
	CoverageEnd   time.Time `json:"coverage_end"`
}

// SlotsFromConfig builds the two weekly slots in configured order.
func SlotsFromConfig(cfg config.OrderingConfig) []Slot {
	return []Slot{
		{
			Weekday:     cfg.SlotAWeekday,
			Label:       cfg.SlotALabel,
			StartOffset: cfg.SlotAStartOffset,
			EndOffset:   cfg.SlotAEndOffset,
		},
		{
			Weekday:     cfg.SlotBWeekday,
			Label:       cfg.SlotBLabel,
			StartOffset: cfg.SlotBStartOffset,
			EndOffset:   cfg.SlotBEndOffset,
		},
	}
}

// Windows computes one window per slot for the given "today". Pure date
// arithmetic: a window is always produced whether or not forecast data exists
// to fill it. If today is the slot's weekday the order date is today itself.
func Windows(today time.Time, slots []Slot) []Window {
	day := forecast.DayOf(today)

	windows := make([]Window, 0, len(slots))
	for _, slot := range slots {
		ahead := (slot.Weekday - forecast.WeekdayMon0(day) + 7) % 7
		orderDate := day.AddDate(0, 0, ahead)
		windows = append(windows, Window{
			OrderDate:     orderDate,
			Label:         slot.Label,
			CoverageStart: orderDate.AddDate(0, 0, slot.StartOffset),
			CoverageEnd:   orderDate.AddDate(0, 0, slot.EndOffset),
		})
	}
	return windows
}
