package forecast

import (
	"errors"
	"testing"
	"time"

	"stima/internal/core"
)

func seriesOf(start core.Day, cents ...int64) []core.DailyPoint {
	series := make([]core.DailyPoint, len(cents))
	for i, c := range cents {
		series[i] = core.DailyPoint{Date: start.AddDays(i), Cents: c}
	}
	return series
}

func TestGetForecaster(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		wantErr bool
	}{
		{"seasonal naive", SeasonalNaive, false},
		{"ses", SES, false},
		{"mean", Mean, false},
		{"unknown", "arima", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := GetForecaster(tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetForecaster(%q) error = %v, wantErr %v", tt.model, err, tt.wantErr)
			}
			if !tt.wantErr && f == nil {
				t.Error("GetForecaster() returned nil forecaster")
			}
		})
	}
}

func TestRegisterForecaster(t *testing.T) {
	RegisterForecaster("flat-mean", MeanForecaster{})
	defer delete(forecasters, "flat-mean")

	if _, err := GetForecaster("flat-mean"); err != nil {
		t.Fatalf("GetForecaster() after register error = %v", err)
	}
}

func TestMeanForecaster(t *testing.T) {
	start := core.NewDay(2024, time.June, 1)

	if _, err := (MeanForecaster{}).Fit(nil); !errors.Is(err, ErrDegenerateSeries) {
		t.Fatalf("Fit(empty) error = %v, want ErrDegenerateSeries", err)
	}

	model, err := MeanForecaster{}.Fit(seriesOf(start, 100, 200, 300))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	points := model.Predict([]core.Day{start.AddDays(3), start.AddDays(4)})
	for _, p := range points {
		if p.Cents != 200 {
			t.Errorf("predicted %d for %s, want 200", p.Cents, p.Date)
		}
	}
}

func TestSESForecaster(t *testing.T) {
	start := core.NewDay(2024, time.June, 1)

	if _, err := (SESForecaster{Alpha: 0.3}).Fit(seriesOf(start, 100)); !errors.Is(err, ErrDegenerateSeries) {
		t.Fatalf("Fit(single point) error = %v, want ErrDegenerateSeries", err)
	}

	// Constant series smooths to the constant.
	model, err := SESForecaster{Alpha: 0.5}.Fit(seriesOf(start, 400, 400, 400, 400))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	points := model.Predict([]core.Day{start.AddDays(4)})
	if points[0].Cents != 400 {
		t.Errorf("predicted %d, want 400", points[0].Cents)
	}

	// Increasing series: the level lands between first and last observation,
	// weighted toward the recent end.
	model, err = SESForecaster{Alpha: 0.5}.Fit(seriesOf(start, 100, 200, 300, 400))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	got := model.Predict([]core.Day{start.AddDays(4)})[0].Cents
	if got <= 100 || got >= 400 {
		t.Errorf("smoothed level = %d, want within (100, 400)", got)
	}
	if got < 250 {
		t.Errorf("smoothed level = %d, want weighted toward recent values (>= 250)", got)
	}
}

func TestSeasonalNaiveForecaster(t *testing.T) {
	// 2024-06-03 is a Monday. Two weeks of history with a weekend spike.
	start := core.NewDay(2024, time.June, 3)
	series := seriesOf(start,
		100, 100, 100, 100, 100, 500, 500,
		300, 300, 300, 300, 300, 700, 700,
	)

	model, err := SeasonalNaiveForecaster{}.Fit(series)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// Next Monday and next Saturday.
	nextMonday := start.AddDays(14)
	nextSaturday := start.AddDays(19)
	points := model.Predict([]core.Day{nextMonday, nextSaturday})

	if points[0].Cents != 200 {
		t.Errorf("Monday prediction = %d, want 200 (mean of 100 and 300)", points[0].Cents)
	}
	if points[1].Cents != 600 {
		t.Errorf("Saturday prediction = %d, want 600 (mean of 500 and 700)", points[1].Cents)
	}
}

func TestSeasonalNaiveFallbackForUnseenWeekday(t *testing.T) {
	// Only two observations: Monday and Tuesday. A Friday prediction has no
	// same-weekday history and must use the overall mean.
	start := core.NewDay(2024, time.June, 3)
	model, err := SeasonalNaiveForecaster{}.Fit(seriesOf(start, 100, 300))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	friday := start.AddDays(4)
	if got := model.Predict([]core.Day{friday})[0].Cents; got != 200 {
		t.Errorf("unseen weekday prediction = %d, want overall mean 200", got)
	}
}

func TestProjectClampsNegativePredictions(t *testing.T) {
	start := core.NewDay(2024, time.June, 1)
	series := seriesOf(start, -500, -500, -500)

	points, err := Project(MeanForecaster{}, series, []core.Day{start.AddDays(3)})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if points[0].Cents != 0 {
		t.Errorf("clamped prediction = %d, want 0", points[0].Cents)
	}
}

func TestProjectEmptyHorizon(t *testing.T) {
	start := core.NewDay(2024, time.June, 1)
	points, err := Project(MeanForecaster{}, seriesOf(start, 100), nil)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if points != nil {
		t.Errorf("Project() with empty horizon = %v, want nil", points)
	}
}

func TestProjectDegenerateSeries(t *testing.T) {
	start := core.NewDay(2024, time.June, 1)
	_, err := Project(SeasonalNaiveForecaster{}, seriesOf(start, 100), []core.Day{start.AddDays(1)})
	if !errors.Is(err, ErrDegenerateSeries) {
		t.Fatalf("Project() error = %v, want ErrDegenerateSeries", err)
	}
}
