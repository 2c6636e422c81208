// Package services provides business logic and orchestration services.
//
// This file implements the monthly spend estimation pipeline: normalize,
// aggregate, resolve the month window, densify, project, compose. The
// pipeline is a pure synchronous computation per request; the only slow step
// is the model fit, which runs under a timeout with a zero-remainder
// fallback so a degenerate series can never fail the request.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stima/internal/amqp"
	"stima/internal/core"
	"stima/internal/forecast"
)

// EstimateResult carries the rounded estimate plus the intermediate figures
// worth auditing.
type EstimateResult struct {
	// Estimate is the rounded, non-negative total in whole currency units.
	Estimate int64
	// ActualCents is the confirmed spend inside the month window.
	ActualCents int64
	// ForecastCents is the clamped projected remainder, 0 for closed months.
	ForecastCents int64
	Window        core.MonthWindow
	TxCount       int
	Closed        bool
	Model         string
}

// EstimateService computes monthly spend estimates. Invocations share no
// state; a single service value is safe for concurrent use.
type EstimateService struct {
	forecaster forecast.Forecaster
	modelName  string
	fitTimeout time.Duration
	amqpClient *amqp.Client

	// Now supplies the evaluation instant. Injected so tests pin "today";
	// defaults to time.Now.
	Now func() time.Time
}

// NewEstimateService resolves the named forecast model from the registry.
// A nil amqpClient disables audit publishing.
func NewEstimateService(modelName string, fitTimeout time.Duration, amqpClient *amqp.Client) (*EstimateService, error) {
	forecaster, err := forecast.GetForecaster(modelName)
	if err != nil {
		return nil, fmt.Errorf("resolve forecast model: %w", err)
	}
	if fitTimeout <= 0 {
		fitTimeout = 5 * time.Second
	}
	return &EstimateService{
		forecaster: forecaster,
		modelName:  modelName,
		fitTimeout: fitTimeout,
		amqpClient: amqpClient,
		Now:        time.Now,
	}, nil
}

// Estimate produces the spend estimate for the calendar month containing
// "now": confirmed in-month spend plus a non-negative projection of the
// remaining days. Raw records arrive as decoded JSON objects; anything
// unusable degrades toward an estimate of 0 rather than an error.
func (s *EstimateService) Estimate(ctx context.Context, raw []map[string]any) (EstimateResult, error) {
	now := s.Now()
	today := core.DayOf(now)
	window := core.WindowFor(now)

	result := EstimateResult{Window: window, Model: s.modelName}

	txs := core.Normalize(raw)
	result.TxCount = len(txs)
	if len(txs) == 0 {
		// No valid records at all: nothing to sum, nothing to project.
		s.publishAudit(ctx, result)
		return result, nil
	}

	result.ActualCents = core.SumInRange(txs, window.First, window.Last)

	lastTx, _ := core.LatestTransactionDay(txs)
	if window.Closed(lastTx) {
		// Every day of the month is already known; the estimate is the
		// exact in-month sum and projecting would double-count.
		result.Closed = true
		result.Estimate = roundNonNegative(result.ActualCents)
		s.publishAudit(ctx, result)
		return result, nil
	}

	series := core.Densify(core.AggregateDaily(txs), today)
	remaining := window.RemainingDays(today)

	result.ForecastCents = s.projectRemainder(ctx, series, remaining)
	result.Estimate = roundNonNegative(result.ActualCents + result.ForecastCents)

	s.publishAudit(ctx, result)
	return result, nil
}

// projectRemainder fits and predicts under the configured timeout. Fit
// failures and timeouts degrade to a zero remainder: a forecast is advisory,
// and actual-to-date spend is still a useful answer.
func (s *EstimateService) projectRemainder(ctx context.Context, series []core.DailyPoint, remaining []core.Day) int64 {
	if len(remaining) == 0 {
		return 0
	}

	cctx, cancel := context.WithTimeout(ctx, s.fitTimeout)
	defer cancel()

	type projection struct {
		points []core.ForecastPoint
		err    error
	}
	done := make(chan projection, 1)
	go func() {
		points, err := forecast.Project(s.forecaster, series, remaining)
		done <- projection{points: points, err: err}
	}()

	select {
	case <-cctx.Done():
		slog.WarnContext(ctx, "Forecast timed out, using zero remainder",
			"model", s.modelName,
			"series_length", len(series),
			"horizon_days", len(remaining),
			"timeout", s.fitTimeout)
		return 0
	case p := <-done:
		if p.err != nil {
			slog.WarnContext(ctx, "Forecast fit failed, using zero remainder",
				"model", s.modelName,
				"series_length", len(series),
				"error", p.err)
			return 0
		}
		var sum int64
		for _, point := range p.points {
			sum += point.Cents
		}
		return sum
	}
}

// publishAudit emits the audit event without ever failing the request.
func (s *EstimateService) publishAudit(ctx context.Context, r EstimateResult) {
	if s.amqpClient == nil {
		return
	}

	msg := amqp.NewEstimateComputedMessage()
	msg.Year = r.Window.Year
	msg.Month = int(r.Window.Month)
	msg.TxCount = r.TxCount
	msg.ActualCents = r.ActualCents
	msg.ForecastCents = r.ForecastCents
	msg.Estimate = r.Estimate
	msg.Model = r.Model
	msg.Closed = r.Closed

	if err := s.amqpClient.PublishEstimateComputed(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish estimate audit message",
			"request_id", msg.RequestID, "error", err)
	}
}

// roundNonNegative rounds cents to whole units and clamps at zero. The
// estimate contract is a non-negative integer even when refunds push the
// in-month sum below zero.
func roundNonNegative(cents int64) int64 {
	if cents < 0 {
		return 0
	}
	return core.RoundCentsToUnits(cents)
}
