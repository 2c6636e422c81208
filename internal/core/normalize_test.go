package core

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  []map[string]any
		want []Transaction
	}{
		{
			name: "nil input",
			raw:  nil,
			want: nil,
		},
		{
			name: "empty input",
			raw:  []map[string]any{},
			want: nil,
		},
		{
			name: "valid records",
			raw: []map[string]any{
				{"date": "2024-12-01", "amount": float64(100)},
				{"date": "2024-12-02", "amount": "200"},
			},
			want: []Transaction{
				{Date: NewDay(2024, time.December, 1), Amount: Money{Cents: 10000}},
				{Date: NewDay(2024, time.December, 2), Amount: Money{Cents: 20000}},
			},
		},
		{
			name: "unparseable date drops record",
			raw: []map[string]any{
				{"date": "not-a-date", "amount": float64(50)},
			},
			want: []Transaction{},
		},
		{
			name: "missing date drops record",
			raw: []map[string]any{
				{"amount": float64(50)},
			},
			want: []Transaction{},
		},
		{
			name: "unparseable amount coerces to zero",
			raw: []map[string]any{
				{"date": "2024-12-01", "amount": "n/a"},
			},
			want: []Transaction{
				{Date: NewDay(2024, time.December, 1), Amount: Money{Cents: 0}},
			},
		},
		{
			name: "mixed valid and invalid",
			raw: []map[string]any{
				{"date": "2024-12-01", "amount": float64(10)},
				{"date": 42, "amount": float64(99)},
				{"date": "2024-12-03T10:30:00Z", "amount": float64(20)},
			},
			want: []Transaction{
				{Date: NewDay(2024, time.December, 1), Amount: Money{Cents: 1000}},
				{Date: NewDay(2024, time.December, 3), Amount: Money{Cents: 2000}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize() returned %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Date.Equal(tt.want[i].Date.Time) || got[i].Amount != tt.want[i].Amount {
					t.Errorf("record %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    Day
		wantErr bool
	}{
		{"plain date", "2024-02-29", NewDay(2024, time.February, 29), false},
		{"rfc3339", "2024-06-15T08:00:00Z", NewDay(2024, time.June, 15), false},
		{"datetime no zone", "2024-06-15T08:00:00", NewDay(2024, time.June, 15), false},
		{"space separated", "2024-06-15 08:00:00", NewDay(2024, time.June, 15), false},
		{"slash date", "2024/06/15", NewDay(2024, time.June, 15), false},
		{"whitespace trimmed", "  2024-06-15  ", NewDay(2024, time.June, 15), false},
		{"garbage", "not-a-date", Day{}, true},
		{"empty", "", Day{}, true},
		{"non string", 20240615, Day{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want.Time) {
				t.Errorf("ParseDay(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
