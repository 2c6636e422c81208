package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"stima/internal/amqp"
	"stima/internal/export"
	"stima/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "stima.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func auditMessage(createdAt time.Time) *amqp.EstimateComputedMessage {
	return &amqp.EstimateComputedMessage{
		RequestID:     "est_worker",
		Year:          2024,
		Month:         6,
		TxCount:       3,
		ActualCents:   9000,
		ForecastCents: 51000,
		Estimate:      600,
		Model:         "seasonal_naive",
		Closed:        false,
		Timestamp:     createdAt,
	}
}

func TestHandleEstimateMessageStoresAndExports(t *testing.T) {
	repo := newTestStorage(t)
	appender := export.NewMemoryAppender()
	w := NewAuditWorker(repo, appender, 90*24*time.Hour, time.Hour)
	ctx := context.Background()

	if err := w.HandleEstimateMessage(ctx, auditMessage(time.Now().UTC())); err != nil {
		t.Fatalf("HandleEstimateMessage() error = %v", err)
	}

	records, err := repo.ListEstimates(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("ListEstimates() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("stored %d records, want 1", len(records))
	}
	if records[0].Estimate != 600 || records[0].Model != "seasonal_naive" {
		t.Errorf("stored record mismatch: %+v", records[0])
	}

	exported := appender.Records()
	if len(exported) != 1 {
		t.Fatalf("exported %d records, want 1", len(exported))
	}
	if exported[0].RequestID != "est_worker" {
		t.Errorf("exported RequestID = %s, want est_worker", exported[0].RequestID)
	}
}

func TestHandleEstimateMessageWithoutExporter(t *testing.T) {
	repo := newTestStorage(t)
	w := NewAuditWorker(repo, nil, 90*24*time.Hour, time.Hour)

	if err := w.HandleEstimateMessage(context.Background(), auditMessage(time.Now().UTC())); err != nil {
		t.Fatalf("HandleEstimateMessage() error = %v", err)
	}
}

// failingAppender always errors to verify export failures never fail the message.
type failingAppender struct{}

func (failingAppender) AppendEstimate(ctx context.Context, msg *amqp.EstimateComputedMessage) (string, error) {
	return "", errors.New("sheets unavailable")
}

func TestHandleEstimateMessageExportFailureIsNotFatal(t *testing.T) {
	repo := newTestStorage(t)
	w := NewAuditWorker(repo, failingAppender{}, 90*24*time.Hour, time.Hour)
	ctx := context.Background()

	if err := w.HandleEstimateMessage(ctx, auditMessage(time.Now().UTC())); err != nil {
		t.Fatalf("HandleEstimateMessage() error = %v, want nil despite export failure", err)
	}

	records, err := repo.ListEstimates(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("ListEstimates() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("stored %d records, want 1", len(records))
	}
}

func TestPruneOnce(t *testing.T) {
	repo := newTestStorage(t)
	w := NewAuditWorker(repo, nil, 24*time.Hour, time.Hour)
	ctx := context.Background()

	if err := w.HandleEstimateMessage(ctx, auditMessage(time.Now().UTC().Add(-48*time.Hour))); err != nil {
		t.Fatalf("HandleEstimateMessage() error = %v", err)
	}
	if err := w.HandleEstimateMessage(ctx, auditMessage(time.Now().UTC())); err != nil {
		t.Fatalf("HandleEstimateMessage() error = %v", err)
	}

	if err := w.PruneOnce(ctx); err != nil {
		t.Fatalf("PruneOnce() error = %v", err)
	}

	count, err := repo.CountEstimates(ctx)
	if err != nil {
		t.Fatalf("CountEstimates() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountEstimates() = %d, want 1 after prune", count)
	}
}
