package predict

import (
	"context"
	"fmt"
	"math"

	"github.com/brewplanhq/brewplan-backend/internal/forecast"
	pkgerrors "github.com/brewplanhq/brewplan-backend/pkg/errors"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
	"github.com/brewplanhq/brewplan-backend/pkg/metrics"
)

// EnrichedDay is a DayFeature plus the demand predictions derived from it.
// PredictedItems always carries the full configured item key set; items
// without a model predict 0.
type EnrichedDay struct {
	forecast.DayFeature
	PredictedVisitors   int            `json:"predicted_visitors"`
	PredictedTotalUnits int            `json:"predicted_total_units"`
	PredictedItems      map[string]int `json:"predicted_items"`
}

// dayPath is one day-level prediction path with its selected strategy:
// model-backed, or fixed-average fallback when the model is absent.
type dayPath struct {
	name      string
	predictor Predictor
	degraded  bool
}

// EnricherParams configure the demand predictor.
type EnricherParams struct {
	Registry           *Registry
	Logger             *logger.Logger
	Metrics            *metrics.PipelineMetrics
	FallbackVisitors   int
	FallbackTotalUnits int
}

// Enricher applies day-level and item-level models to feature records. It is
// stateless across records; each day is predicted independently.
type Enricher struct {
	visitors   dayPath
	totalUnits dayPath
	itemIDs    []string
	items      map[string]Predictor

	logg    *logger.Logger
	metrics *metrics.PipelineMetrics
}

// NewEnricher selects a strategy per prediction path from the loaded registry.
// It fails up front when no predictor of any kind is available, so the
// condition surfaces at startup rather than on the first request.
func NewEnricher(params EnricherParams) (*Enricher, error) {
	if params.Registry == nil {
		return nil, fmt.Errorf("model registry required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if !params.Registry.HasAnyModel() {
		return nil, pkgerrors.New(pkgerrors.CodeNotReady, "no prediction model loaded")
	}

	e := &Enricher{
		itemIDs: params.Registry.ItemIDs(),
		items:   make(map[string]Predictor, len(params.Registry.ItemIDs())),
		logg:    params.Logger,
		metrics: params.Metrics,
	}

	e.visitors = selectDayPath("visitors", params.Registry.Visitors, params.FallbackVisitors)
	e.totalUnits = selectDayPath("total_units", params.Registry.TotalUnits, params.FallbackTotalUnits)

	for _, id := range e.itemIDs {
		if model, ok := params.Registry.Item(id); ok {
			e.items[id] = model
		}
	}

	return e, nil
}

func selectDayPath(name string, lookup func() (Predictor, bool), fallback int) dayPath {
	if model, ok := lookup(); ok {
		return dayPath{name: name, predictor: model}
	}
	return dayPath{name: name, predictor: NewFixedValue(float64(fallback)), degraded: true}
}

// Degraded reports whether any day-level path runs on its fallback average.
func (e *Enricher) Degraded() bool {
	return e.visitors.degraded || e.totalUnits.degraded
}

// EnrichAll predicts demand for every record. Records are independent; the
// output preserves input order and dates.
func (e *Enricher) EnrichAll(ctx context.Context, records []forecast.DayFeature) ([]EnrichedDay, error) {
	e.warnDegraded(ctx)

	enriched := make([]EnrichedDay, 0, len(records))
	for _, record := range records {
		day, err := e.enrichOne(record)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, day)
	}
	return enriched, nil
}

func (e *Enricher) enrichOne(record forecast.DayFeature) (EnrichedDay, error) {
	base := map[string]float64{
		FeatureAvgTemp:     record.AvgTempC,
		FeatureDayOfWeek:   float64(record.DayOfWeek),
		FeatureMonth:       float64(record.Month),
		FeatureWeatherCode: float64(record.WeatherCode),
	}

	visitors, err := predictCount(e.visitors.predictor, base)
	if err != nil {
		return EnrichedDay{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "predicting visitors")
	}
	totalUnits, err := predictCount(e.totalUnits.predictor, base)
	if err != nil {
		return EnrichedDay{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "predicting total units")
	}

	// Item models consume the day-level predictions as input features.
	extended := map[string]float64{
		FeatureVisitors:    float64(visitors),
		FeatureTotalUnits:  float64(totalUnits),
		FeatureAvgTemp:     record.AvgTempC,
		FeatureDayOfWeek:   float64(record.DayOfWeek),
		FeatureMonth:       float64(record.Month),
		FeatureWeatherCode: float64(record.WeatherCode),
	}

	items := make(map[string]int, len(e.itemIDs))
	for _, id := range e.itemIDs {
		model, ok := e.items[id]
		if !ok {
			items[id] = 0
			continue
		}
		quantity, err := predictCount(model, extended)
		if err != nil {
			return EnrichedDay{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "predicting item "+id)
		}
		items[id] = quantity
	}

	return EnrichedDay{
		DayFeature:          record,
		PredictedVisitors:   visitors,
		PredictedTotalUnits: totalUnits,
		PredictedItems:      items,
	}, nil
}

func (e *Enricher) warnDegraded(ctx context.Context) {
	if !e.Degraded() {
		return
	}
	for _, path := range []dayPath{e.visitors, e.totalUnits} {
		if !path.degraded {
			continue
		}
		pathCtx := e.logg.WithField(ctx, "prediction_path", path.name)
		e.logg.Warn(pathCtx, "model absent; using fixed-average fallback")
	}
	if e.metrics != nil {
		e.metrics.IncDegraded()
	}
}

// predictCount rounds to the nearest integer and clamps at zero.
func predictCount(p Predictor, features map[string]float64) (int, error) {
	value, err := p.Predict(features)
	if err != nil {
		return 0, err
	}
	count := int(math.Round(value))
	if count < 0 {
		count = 0
	}
	return count, nil
}
