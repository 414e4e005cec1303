package predict

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Feature names shared with the offline training pipeline. Order inside an
// artifact is fixed by its features list, not by these constants.
const (
	FeatureAvgTemp     = "avg_temp_c"
	FeatureDayOfWeek   = "day_of_week"
	FeatureMonth       = "month"
	FeatureWeatherCode = "weather_code"
	FeatureVisitors    = "visitors"
	FeatureTotalUnits  = "total_units"
)

// Predictor is an opaque callable from a named feature set to a numeric
// prediction. Implementations are read-only after construction and safe for
// concurrent use.
type Predictor interface {
	Predict(features map[string]float64) (float64, error)
}

// LinearModel is a trained regression artifact exported to JSON: one
// coefficient per feature plus an intercept.
type LinearModel struct {
	Name         string    `json:"name" validate:"required"`
	Features     []string  `json:"features" validate:"required,min=1,dive,required"`
	Coefficients []float64 `json:"coefficients" validate:"required"`
	Intercept    float64   `json:"intercept"`
}

var _ Predictor = (*LinearModel)(nil)

var artifactValidator = validator.New()

// LoadModelFile reads and validates one model artifact.
func LoadModelFile(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var model LinearModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("parsing model artifact: %w", err)
	}
	if err := artifactValidator.Struct(&model); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}
	if len(model.Features) != len(model.Coefficients) {
		return nil, fmt.Errorf("model %q has %d features but %d coefficients",
			model.Name, len(model.Features), len(model.Coefficients))
	}
	return &model, nil
}

// Predict computes the linear combination over the artifact's feature list.
func (m *LinearModel) Predict(features map[string]float64) (float64, error) {
	sum := m.Intercept
	for i, name := range m.Features {
		value, ok := features[name]
		if !ok {
			return 0, fmt.Errorf("model %q: missing feature %q", m.Name, name)
		}
		sum += m.Coefficients[i] * value
	}
	return sum, nil
}

// FixedValue is the fallback strategy substituted when a day-level model is
// absent: it always predicts the configured training-set average.
type FixedValue struct {
	value float64
}

var _ Predictor = (*FixedValue)(nil)

// NewFixedValue builds a fixed-average fallback predictor.
func NewFixedValue(value float64) *FixedValue {
	return &FixedValue{value: value}
}

// Predict returns the fixed value regardless of features.
func (f *FixedValue) Predict(map[string]float64) (float64, error) {
	return f.value, nil
}
