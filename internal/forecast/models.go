package forecast

import (
	"math"
	"time"

	"stima/internal/core"
)

// MeanForecaster predicts the overall daily mean of the history for every
// future day. It is the degenerate-safe baseline: a single observation is
// enough to fit.
type MeanForecaster struct{}

func (MeanForecaster) Fit(series []core.DailyPoint) (Model, error) {
	if len(series) == 0 {
		return nil, ErrDegenerateSeries
	}
	var sum float64
	for _, p := range series {
		sum += float64(p.Cents)
	}
	return flatModel{level: sum / float64(len(series))}, nil
}

// SESForecaster applies simple exponential smoothing and forecasts the final
// smoothed level flat over the horizon. Recent days weigh more than old ones,
// which tracks a drifting spending pace better than a plain mean.
type SESForecaster struct {
	// Alpha is the smoothing factor in (0, 1]; higher reacts faster.
	Alpha float64
}

func (f SESForecaster) Fit(series []core.DailyPoint) (Model, error) {
	if len(series) < 2 {
		return nil, ErrDegenerateSeries
	}
	alpha := f.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	level := float64(series[0].Cents)
	for _, p := range series[1:] {
		level = alpha*float64(p.Cents) + (1-alpha)*level
	}
	return flatModel{level: level}, nil
}

// flatModel forecasts one constant level for every requested day.
type flatModel struct {
	level float64
}

func (m flatModel) Predict(days []core.Day) []core.ForecastPoint {
	points := make([]core.ForecastPoint, len(days))
	for i, d := range days {
		points[i] = core.ForecastPoint{Date: d, Cents: int64(math.Round(m.level))}
	}
	return points
}

// SeasonalNaiveForecaster exploits weekly periodicity: each future day is
// predicted as the mean of the historical values observed on the same
// weekday. Weekdays never observed fall back to the overall daily mean,
// so a short history still yields a full-horizon forecast.
type SeasonalNaiveForecaster struct{}

func (SeasonalNaiveForecaster) Fit(series []core.DailyPoint) (Model, error) {
	if len(series) < 2 {
		return nil, ErrDegenerateSeries
	}

	var total float64
	sums := make(map[time.Weekday]float64, 7)
	counts := make(map[time.Weekday]int, 7)
	for _, p := range series {
		wd := p.Date.Weekday()
		sums[wd] += float64(p.Cents)
		counts[wd]++
		total += float64(p.Cents)
	}

	byWeekday := make(map[time.Weekday]float64, len(sums))
	for wd, sum := range sums {
		byWeekday[wd] = sum / float64(counts[wd])
	}

	return seasonalModel{
		byWeekday: byWeekday,
		fallback:  total / float64(len(series)),
	}, nil
}

type seasonalModel struct {
	byWeekday map[time.Weekday]float64
	fallback  float64
}

func (m seasonalModel) Predict(days []core.Day) []core.ForecastPoint {
	points := make([]core.ForecastPoint, len(days))
	for i, d := range days {
		level, ok := m.byWeekday[d.Weekday()]
		if !ok {
			level = m.fallback
		}
		points[i] = core.ForecastPoint{Date: d, Cents: int64(math.Round(level))}
	}
	return points
}
