package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "stima.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleRecord(createdAt time.Time) EstimateRecord {
	return EstimateRecord{
		RequestID:     "est_test",
		Year:          2024,
		Month:         6,
		TxCount:       5,
		ActualCents:   15000,
		ForecastCents: 72000,
		Estimate:      870,
		Model:         "seasonal_naive",
		MonthClosed:   false,
		CreatedAt:     createdAt,
	}
}

func TestInsertAndListEstimates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	first := sampleRecord(now.Add(-time.Hour))
	second := sampleRecord(now)
	second.RequestID = "est_newer"
	second.Estimate = 900

	if _, err := repo.InsertEstimate(ctx, first); err != nil {
		t.Fatalf("InsertEstimate() error = %v", err)
	}
	if _, err := repo.InsertEstimate(ctx, second); err != nil {
		t.Fatalf("InsertEstimate() error = %v", err)
	}

	records, err := repo.ListEstimates(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("ListEstimates() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ListEstimates() returned %d records, want 2", len(records))
	}
	if records[0].RequestID != "est_newer" {
		t.Errorf("newest record first: got %s, want est_newer", records[0].RequestID)
	}
	if records[0].Estimate != 900 || records[0].ActualCents != 15000 {
		t.Errorf("record round-trip mismatch: %+v", records[0])
	}

	other, err := repo.ListEstimates(ctx, 2024, 7)
	if err != nil {
		t.Fatalf("ListEstimates() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("ListEstimates() for empty month returned %d records, want 0", len(other))
	}
}

func TestPruneBefore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	old := sampleRecord(now.Add(-48 * time.Hour))
	fresh := sampleRecord(now)

	if _, err := repo.InsertEstimate(ctx, old); err != nil {
		t.Fatalf("InsertEstimate() error = %v", err)
	}
	if _, err := repo.InsertEstimate(ctx, fresh); err != nil {
		t.Fatalf("InsertEstimate() error = %v", err)
	}

	pruned, err := repo.PruneBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("PruneBefore() pruned %d records, want 1", pruned)
	}

	count, err := repo.CountEstimates(ctx)
	if err != nil {
		t.Fatalf("CountEstimates() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountEstimates() = %d, want 1", count)
	}
}
