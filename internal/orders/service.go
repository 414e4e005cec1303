package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/brewplanhq/brewplan-backend/internal/forecast"
	"github.com/brewplanhq/brewplan-backend/internal/predict"
	"github.com/brewplanhq/brewplan-backend/internal/schedule"
	"github.com/brewplanhq/brewplan-backend/pkg/config"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
	"github.com/brewplanhq/brewplan-backend/pkg/metrics"
)

// Result is the response payload for one pipeline run.
type Result struct {
	Recommendations []Recommendation `json:"order_recommendations"`
	Unit            string           `json:"unit"`
	GeneratedAt     time.Time        `json:"generated_at"`
	ModelInfo       string           `json:"model_info"`
}

// Service exposes the forecast-to-order pipeline.
type Service interface {
	Recommend(ctx context.Context) (*Result, error)
}

type enricher interface {
	EnrichAll(ctx context.Context, records []forecast.DayFeature) ([]predict.EnrichedDay, error)
}

// ServiceParams wire the pipeline's collaborators.
type ServiceParams struct {
	Source   forecast.Source
	Enricher enricher
	ItemIDs  []string
	Ordering config.OrderingConfig
	Logger   *logger.Logger
	Metrics  *metrics.PipelineMetrics

	// Now overrides the clock in tests.
	Now func() time.Time
}

type service struct {
	source   forecast.Source
	enricher enricher
	itemIDs  []string
	slots    []schedule.Slot
	opts     forecast.NormalizeOptions
	unit     string
	logg     *logger.Logger
	metrics  *metrics.PipelineMetrics
	now      func() time.Time
}

// NewService builds the pipeline service.
func NewService(params ServiceParams) (Service, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("forecast source required")
	}
	if params.Enricher == nil {
		return nil, fmt.Errorf("enricher required")
	}
	if len(params.ItemIDs) == 0 {
		return nil, fmt.Errorf("item identifiers required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		source:   params.Source,
		enricher: params.Enricher,
		itemIDs:  append([]string(nil), params.ItemIDs...),
		slots:    schedule.SlotsFromConfig(params.Ordering),
		opts: forecast.NormalizeOptions{
			ClosedWeekday: params.Ordering.ClosedWeekday,
			MaxDays:       params.Ordering.ForecastHorizonDays,
		},
		unit:    params.Ordering.Unit,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// Recommend runs one complete pipeline pass: fetch, normalize, predict,
// schedule, aggregate. Each run works on its own local record slices; a
// failure anywhere aborts the run with no partial output.
func (s *service) Recommend(ctx context.Context) (*Result, error) {
	started := s.now()
	today := started
	ctx = s.logg.WithRunDate(ctx, forecast.DayOf(today).Format("2006-01-02"))

	result, err := s.run(ctx, today)
	s.observe(err, s.now().Sub(started))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) run(ctx context.Context, today time.Time) (*Result, error) {
	samples, err := s.source.FetchForecast(ctx)
	if err != nil {
		return nil, err
	}

	records, err := forecast.Normalize(samples, s.opts)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "forecast_days", len(records)), "forecast normalized")

	enriched, err := s.enricher.EnrichAll(ctx, records)
	if err != nil {
		return nil, err
	}

	windows := schedule.Windows(today, s.slots)
	recommendations := Aggregate(enriched, windows, s.itemIDs)
	s.logg.Info(s.logg.WithField(ctx, "recommendations", len(recommendations)), "order recommendations computed")

	return &Result{
		Recommendations: recommendations,
		Unit:            s.unit,
		GeneratedAt:     s.now(),
		ModelInfo:       "computed from current date and forecast demand models",
	}, nil
}

// Unavailable returns a Service that fails every request with the given
// error. It lets the API boot and keep serving health probes when the
// pipeline could not be assembled at startup.
func Unavailable(err error) Service {
	return unavailableService{err: err}
}

type unavailableService struct {
	err error
}

func (u unavailableService) Recommend(context.Context) (*Result, error) {
	return nil, u.err
}

func (s *service) observe(err error, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.ObserveRun(outcome, duration)
}
