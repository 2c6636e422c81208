package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stima/internal/amqp"
	"stima/internal/export"
	"stima/internal/storage"
)

// AuditWorker persists estimate audit messages and optionally mirrors them to
// an external sink.
type AuditWorker struct {
	storage  *storage.SQLiteRepository
	exporter export.EstimateAppender

	retention     time.Duration
	pruneInterval time.Duration
}

func NewAuditWorker(storage *storage.SQLiteRepository, exporter export.EstimateAppender, retention, pruneInterval time.Duration) *AuditWorker {
	return &AuditWorker{
		storage:       storage,
		exporter:      exporter,
		retention:     retention,
		pruneInterval: pruneInterval,
	}
}

// HandleEstimateMessage processes a single estimate audit message from AMQP.
func (w *AuditWorker) HandleEstimateMessage(ctx context.Context, msg *amqp.EstimateComputedMessage) error {
	slog.InfoContext(ctx, "Processing estimate audit message",
		"request_id", msg.RequestID,
		"year", msg.Year,
		"month", msg.Month,
		"estimate", msg.Estimate)

	id, err := w.storage.InsertEstimate(ctx, storage.EstimateRecord{
		RequestID:     msg.RequestID,
		Year:          msg.Year,
		Month:         msg.Month,
		TxCount:       msg.TxCount,
		ActualCents:   msg.ActualCents,
		ForecastCents: msg.ForecastCents,
		Estimate:      msg.Estimate,
		Model:         msg.Model,
		MonthClosed:   msg.Closed,
		CreatedAt:     msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("insert estimate audit record: %w", err)
	}

	// The record is already stored, so an export failure must not nack the
	// message: a redelivery would insert a duplicate row.
	if w.exporter != nil {
		ref, err := w.exporter.AppendEstimate(ctx, msg)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to export estimate",
				"id", id,
				"request_id", msg.RequestID,
				"error", err)
		} else {
			slog.InfoContext(ctx, "Estimate exported",
				"id", id,
				"ref", ref)
		}
	}

	return nil
}

// PruneOnce deletes audit records older than the retention window.
func (w *AuditWorker) PruneOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-w.retention)
	if _, err := w.storage.PruneBefore(ctx, cutoff); err != nil {
		return fmt.Errorf("prune audit records: %w", err)
	}
	return nil
}

// RunPruneLoop prunes on startup and then on every tick until the context is
// cancelled.
func (w *AuditWorker) RunPruneLoop(ctx context.Context) error {
	if err := w.PruneOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup prune failed", "error", err)
	}

	ticker := time.NewTicker(w.pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.PruneOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic prune failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
