// Package forecast provides the pluggable time-series forecasting capability
// used to project spend for the remaining days of an open month.
//
// The pipeline depends only on the narrow Forecaster/Model interfaces, so the
// concrete model is swappable without touching normalization, densification,
// or composition. Each model encapsulates one fitting algorithm and is looked
// up through a registry keyed by name.
package forecast

import (
	"errors"
	"fmt"

	"stima/internal/core"
)

// Model is a fitted forecasting model producing a point estimate per
// requested future day. Estimates are raw model output; clamping to
// non-negative values is the projector's job, not the model's.
type Model interface {
	Predict(days []core.Day) []core.ForecastPoint
}

// Forecaster fits a Model on a gap-free ascending daily series.
type Forecaster interface {
	// Fit returns ErrDegenerateSeries when the series is too short or too
	// flat for the algorithm; callers degrade to a zero remainder.
	Fit(series []core.DailyPoint) (Model, error)
}

// ErrDegenerateSeries signals a series the model cannot be fit on.
var ErrDegenerateSeries = errors.New("series too degenerate to fit")

// Model names accepted by GetForecaster and the FORECAST_MODEL config key.
const (
	SeasonalNaive = "seasonal_naive"
	SES           = "ses"
	Mean          = "mean"
)

// forecasters maps model names to their implementations.
var forecasters = map[string]Forecaster{
	SeasonalNaive: SeasonalNaiveForecaster{},
	SES:           SESForecaster{Alpha: 0.3},
	Mean:          MeanForecaster{},
}

// GetForecaster returns the forecaster registered under name.
func GetForecaster(name string) (Forecaster, error) {
	f, ok := forecasters[name]
	if !ok {
		return nil, fmt.Errorf("unknown forecast model: %s", name)
	}
	return f, nil
}

// RegisterForecaster registers a custom forecaster under a new name.
func RegisterForecaster(name string, f Forecaster) {
	forecasters[name] = f
}

// Project fits the forecaster on the series and predicts the given future
// days, clamping every predicted amount at zero. Spend forecasts must never
// be negative regardless of what the model produces.
func Project(f Forecaster, series []core.DailyPoint, days []core.Day) ([]core.ForecastPoint, error) {
	if len(days) == 0 {
		return nil, nil
	}
	model, err := f.Fit(series)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}
	points := model.Predict(days)
	for i := range points {
		if points[i].Cents < 0 {
			points[i].Cents = 0
		}
	}
	return points, nil
}
