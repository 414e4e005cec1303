package forecast

import (
	"sort"
	"time"

	pkgerrors "github.com/brewplanhq/brewplan-backend/pkg/errors"
)

// ReferenceHour is the local hour whose sample represents the whole day.
const ReferenceHour = 12

// NormalizeOptions control which raw samples become day records.
type NormalizeOptions struct {
	// ClosedWeekday (Monday=0) is skipped entirely; it never yields a record.
	ClosedWeekday int
	// MaxDays caps how many open-business dates are collected.
	MaxDays int
}

// Normalize reduces sub-daily samples to at most one DayFeature per calendar
// date: the sample taken at the reference hour. Dates on the closed weekday
// are dropped, and collection stops once MaxDays open-business dates are
// gathered. Zero collected days is a not-found failure, distinct from the
// upstream fetch failing.
func Normalize(samples []Sample, opts NormalizeOptions) ([]DayFeature, error) {
	if opts.MaxDays <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "forecast horizon must be positive")
	}

	seen := make(map[time.Time]struct{}, opts.MaxDays)
	records := make([]DayFeature, 0, opts.MaxDays)

	for _, sample := range samples {
		if len(records) >= opts.MaxDays {
			break
		}
		if sample.Timestamp.Hour() != ReferenceHour {
			continue
		}
		date := DayOf(sample.Timestamp)
		if _, ok := seen[date]; ok {
			continue
		}
		if WeekdayMon0(sample.Timestamp) == opts.ClosedWeekday {
			continue
		}

		records = append(records, DayFeature{
			Date:        date,
			AvgTempC:    sample.TempC,
			DayOfWeek:   WeekdayMon0(sample.Timestamp),
			Month:       int(sample.Timestamp.Month()),
			WeatherCode: CodeForDescription(sample.Description),
		})
		seen[date] = struct{}{}
	}

	if len(records) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no usable forecast days after filtering")
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}
