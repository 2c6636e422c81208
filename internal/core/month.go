package core

import "time"

// MonthWindow is the calendar month containing "now" at evaluation time.
// Last is the true last calendar day of the month, leap years included.
type MonthWindow struct {
	Year  int
	Month time.Month
	First Day
	Last  Day
}

// WindowFor computes the month window containing the given instant,
// evaluated on the UTC calendar.
func WindowFor(now time.Time) MonthWindow {
	y, m, _ := now.UTC().Date()
	first := NewDay(y, m, 1)
	// Day zero of the next month is the last day of this one.
	last := Day{Time: time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)}
	return MonthWindow{Year: y, Month: m, First: first, Last: last}
}

// Contains reports whether d falls within the window.
func (w MonthWindow) Contains(d Day) bool {
	return !d.Before(w.First.Time) && !d.After(w.Last.Time)
}

// Closed reports whether the month is already fully covered by data:
// the latest transaction is on or after the month's last calendar day,
// so every day of the window is known and no projection is needed.
func (w MonthWindow) Closed(lastTransaction Day) bool {
	return !lastTransaction.Before(w.Last.Time)
}

// RemainingDays lists the days strictly after today through the window's
// last day. Empty when today is already the last day of the month.
func (w MonthWindow) RemainingDays(today Day) []Day {
	if !today.Before(w.Last.Time) {
		return nil
	}
	n := today.DaysUntil(w.Last)
	days := make([]Day, 0, n)
	for d := today.AddDays(1); !d.After(w.Last.Time); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
