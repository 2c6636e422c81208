package core

// AggregateDaily groups transactions by calendar date and sums the amounts
// within each date. Cents arithmetic keeps the sum order-independent.
// No entry is manufactured for absent dates; that is Densify's job.
func AggregateDaily(txs []Transaction) map[Day]int64 {
	if len(txs) == 0 {
		return nil
	}
	totals := make(map[Day]int64, len(txs))
	for _, tx := range txs {
		totals[tx.Date] += tx.Amount.Cents
	}
	return totals
}

// EarliestDay returns the smallest key of a daily aggregate.
// ok is false for an empty aggregate.
func EarliestDay(totals map[Day]int64) (Day, bool) {
	var min Day
	found := false
	for d := range totals {
		if !found || d.Before(min.Time) {
			min = d
			found = true
		}
	}
	return min, found
}

// LatestTransactionDay returns the most recent date among the transactions.
// ok is false when there are none.
func LatestTransactionDay(txs []Transaction) (Day, bool) {
	var max Day
	found := false
	for _, tx := range txs {
		if !found || tx.Date.After(max.Time) {
			max = tx.Date
			found = true
		}
	}
	return max, found
}

// Densify expands a daily aggregate into a gap-free ascending series from the
// earliest observed day through today inclusive. Days with no transactions
// get an explicit 0: no spend on a day is literally spend = 0, not "unknown".
// Today is always the final point even without a transaction, so the series
// anchors the forecaster's time axis at the evaluation date.
func Densify(totals map[Day]int64, today Day) []DailyPoint {
	start, ok := EarliestDay(totals)
	if !ok {
		return nil
	}
	if today.Before(start.Time) {
		// A series cannot extend backwards from its first observation.
		today = start
	}
	n := start.DaysUntil(today) + 1
	series := make([]DailyPoint, 0, n)
	for d := start; !d.After(today.Time); d = d.AddDays(1) {
		series = append(series, DailyPoint{Date: d, Cents: totals[d]})
	}
	return series
}

// SumInRange sums transaction amounts whose date falls in [first, last].
func SumInRange(txs []Transaction, first, last Day) int64 {
	var sum int64
	for _, tx := range txs {
		if !tx.Date.Before(first.Time) && !tx.Date.After(last.Time) {
			sum += tx.Amount.Cents
		}
	}
	return sum
}
