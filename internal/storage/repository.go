package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// EstimateRecord is one audited estimate computation.
type EstimateRecord struct {
	ID            int64
	RequestID     string
	Year          int
	Month         int
	TxCount       int
	ActualCents   int64
	ForecastCents int64
	Estimate      int64
	Model         string
	MonthClosed   bool
	CreatedAt     time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertEstimate stores one audit record.
func (r *SQLiteRepository) InsertEstimate(ctx context.Context, rec EstimateRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO estimates (
			request_id, year, month, tx_count,
			actual_cents, forecast_cents, estimate,
			model, month_closed, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RequestID, rec.Year, rec.Month, rec.TxCount,
		rec.ActualCents, rec.ForecastCents, rec.Estimate,
		rec.Model, rec.MonthClosed, rec.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert estimate: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("estimate insert id: %w", err)
	}

	slog.InfoContext(ctx, "Estimate audit record saved",
		"id", id,
		"request_id", rec.RequestID,
		"year", rec.Year,
		"month", rec.Month,
		"estimate", rec.Estimate,
		"model", rec.Model)

	return id, nil
}

// ListEstimates returns audit records for one month, newest first.
func (r *SQLiteRepository) ListEstimates(ctx context.Context, year, month int) ([]EstimateRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, year, month, tx_count,
		       actual_cents, forecast_cents, estimate,
		       model, month_closed, created_at
		FROM estimates
		WHERE year = ? AND month = ?
		ORDER BY created_at DESC, id DESC`,
		year, month)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var records []EstimateRecord
	for rows.Next() {
		var rec EstimateRecord
		if err := rows.Scan(
			&rec.ID, &rec.RequestID, &rec.Year, &rec.Month, &rec.TxCount,
			&rec.ActualCents, &rec.ForecastCents, &rec.Estimate,
			&rec.Model, &rec.MonthClosed, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}

	return records, nil
}

// CountEstimates returns the number of stored audit records.
func (r *SQLiteRepository) CountEstimates(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM estimates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count estimates: %w", err)
	}
	return count, nil
}

// PruneBefore deletes audit records created before the cutoff and reports how
// many were removed.
func (r *SQLiteRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune estimates: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}

	if pruned > 0 {
		slog.InfoContext(ctx, "Pruned old estimate audit records",
			"pruned", pruned,
			"cutoff", cutoff.UTC().Format(time.RFC3339))
	}

	return pruned, nil
}
