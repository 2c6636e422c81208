package core

import (
	"errors"
	"time"
)

type (
	// Day is a calendar date with no time-of-day component. All Days are
	// normalized to midnight UTC so they compare cleanly and work as map keys.
	Day struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single dated spend record after normalization.
	Transaction struct {
		Date   Day
		Amount Money
	}

	// DailyPoint is one entry of a densified daily series.
	DailyPoint struct {
		Date  Day
		Cents int64
	}

	// ForecastPoint is a projected spend amount for a single future day,
	// clamped at zero by the projector.
	ForecastPoint struct {
		Date  Day
		Cents int64
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

// NewDay creates a Day from year, month, day.
func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates an instant to its UTC calendar date.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return NewDay(y, m, d)
}

// AddDays returns the Day n calendar days after d (negative n goes back).
func (d Day) AddDays(n int) Day {
	return Day{Time: d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other.
// Zero when equal, negative when other is earlier.
func (d Day) DaysUntil(other Day) int {
	return int(other.Time.Sub(d.Time) / (24 * time.Hour))
}

func (d Day) String() string {
	return d.Format("2006-01-02")
}

// Units returns the whole currency units as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}
