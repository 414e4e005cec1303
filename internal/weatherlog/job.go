package weatherlog

import (
	"context"
	"fmt"
	"time"

	"github.com/brewplanhq/brewplan-backend/internal/forecast"
	"github.com/brewplanhq/brewplan-backend/pkg/db/models"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
)

type upserter interface {
	Upsert(ctx context.Context, row *models.DailyWeather) error
}

// CollectorJobParams configure the daily weather collector.
type CollectorJobParams struct {
	Logger *logger.Logger
	Source forecast.Source
	Repo   upserter

	// Now overrides the clock in tests.
	Now func() time.Time
}

// CollectorJob records today's midday forecast sample into the weather log.
// It shares the normalization rules with the recommendation pipeline but is
// otherwise independent of it: a failed run logs and returns, and the next
// scheduled run self-corrects.
type CollectorJob struct {
	logg   *logger.Logger
	source forecast.Source
	repo   upserter
	now    func() time.Time
}

// NewCollectorJob builds the collector cron job.
func NewCollectorJob(params CollectorJobParams) (*CollectorJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Source == nil {
		return nil, fmt.Errorf("forecast source required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &CollectorJob{
		logg:   params.Logger,
		source: params.Source,
		repo:   params.Repo,
		now:    now,
	}, nil
}

// Name identifies the job in logs and metrics.
func (j *CollectorJob) Name() string {
	return "weather-collector"
}

// Run fetches the forecast once and upserts today's midday sample. No sample
// for today is a no-op, not a failure.
func (j *CollectorJob) Run(ctx context.Context) error {
	today := forecast.DayOf(j.now())
	ctx = j.logg.WithField(ctx, "record_date", today.Format("2006-01-02"))

	samples, err := j.source.FetchForecast(ctx)
	if err != nil {
		return fmt.Errorf("fetching forecast: %w", err)
	}

	sample, ok := middaySampleFor(samples, today)
	if !ok {
		j.logg.Warn(ctx, "no midday sample for today; skipping weather log write")
		return nil
	}

	row := &models.DailyWeather{
		RecordDate:  today,
		AvgTempC:    sample.TempC,
		DayOfWeek:   forecast.WeekdayMon0(sample.Timestamp),
		Month:       int(sample.Timestamp.Month()),
		WeatherCode: forecast.CodeForDescription(sample.Description),
	}
	if err := j.repo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("saving weather row: %w", err)
	}

	j.logg.Info(ctx, "weather log row saved")
	return nil
}

func middaySampleFor(samples []forecast.Sample, date time.Time) (forecast.Sample, bool) {
	for _, sample := range samples {
		if sample.Timestamp.Hour() != forecast.ReferenceHour {
			continue
		}
		if forecast.DayOf(sample.Timestamp).Equal(date) {
			return sample, true
		}
	}
	return forecast.Sample{}, false
}
