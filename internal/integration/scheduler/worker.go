// Package scheduler runs the ledger sweeps on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/usecase/sweep"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// Worker runs the daily lease sweep on every tick and the rent roll sweep
// for the previous month once per month.
type Worker struct {
	daily      *sweep.DailySweepUseCase
	rentRolls  *sweep.RentRollSweepUseCase
	clock      adapter.Clock
	observer   adapter.BatchObserver
	interval   time.Duration
	runTimeout time.Duration

	lastRollMonth string
}

// WorkerConfig holds configuration for the scheduler worker.
type WorkerConfig struct {
	Interval   time.Duration
	RunTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval:   time.Hour,
		RunTimeout: 30 * time.Minute,
	}
}

// NewWorker creates a new scheduler worker. observer may be nil.
func NewWorker(
	daily *sweep.DailySweepUseCase,
	rentRolls *sweep.RentRollSweepUseCase,
	clock adapter.Clock,
	observer adapter.BatchObserver,
	config WorkerConfig,
) *Worker {
	if config.Interval <= 0 {
		config.Interval = DefaultWorkerConfig().Interval
	}
	return &Worker{
		daily:      daily,
		rentRolls:  rentRolls,
		clock:      clock,
		observer:   observer,
		interval:   config.Interval,
		runTimeout: config.RunTimeout,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Scheduler worker started",
		"interval", w.interval,
		"run_timeout", w.runTimeout,
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler worker shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce runs the sweeps due now.
func (w *Worker) RunOnce(ctx context.Context) {
	runCtx := ctx
	if w.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, w.runTimeout)
		defer cancel()
	}

	result, err := w.daily.Execute(runCtx)
	if err != nil {
		slog.Error("Daily lease sweep failed", "error", err)
	} else {
		w.observe(result)
	}

	if runCtx.Err() != nil {
		return
	}

	month := sweep.PreviousMonth(w.clock.Now())
	key := time.Date(month.Year, time.Month(month.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	if key == w.lastRollMonth {
		return
	}

	rolls, err := w.rentRolls.Execute(runCtx, month)
	if err != nil {
		slog.Error("Rent roll sweep failed", "month", key, "error", err)
		return
	}
	w.observe(rolls)
	if !rolls.HasFailures() && !rolls.Canceled {
		w.lastRollMonth = key
	}
}

func (w *Worker) observe(result *entity.BatchResult) {
	if w.observer != nil {
		w.observer.ObserveBatch(result)
	}
}
