package core

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a record's date field.
// Time-of-day and zone information is discarded; only the calendar date
// places a record on the timeline.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// Normalize parses raw decoded JSON records into validated transactions.
//
// A record with no parseable date cannot be placed on the timeline and is
// dropped entirely. An unparseable amount coerces to 0 via CoerceAmountCents.
// The result may be empty; callers treat that as "nothing to forecast".
func Normalize(raw []map[string]any) []Transaction {
	if len(raw) == 0 {
		return nil
	}
	txs := make([]Transaction, 0, len(raw))
	for _, rec := range raw {
		day, err := ParseDay(rec["date"])
		if err != nil {
			continue
		}
		txs = append(txs, Transaction{
			Date:   day,
			Amount: Money{Cents: CoerceAmountCents(rec["amount"])},
		})
	}
	return txs
}

// ParseDay parses a date-like value into a Day. Only strings matching one of
// dateLayouts are accepted; anything else is ErrInvalidDate.
func ParseDay(v any) (Day, error) {
	s, ok := v.(string)
	if !ok {
		return Day{}, ErrInvalidDate
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return Day{}, ErrInvalidDate
}
