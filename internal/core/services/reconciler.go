package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
)

// Reconciler periodically rebuilds every budget's spent total from the
// transactions table. It is the safety net behind the incremental updates:
// any drift caused by a crash between a transaction write and its spent
// adjustment is repaired on the next pass.
type Reconciler struct {
	budgetSpent portssvc.BudgetSpentSvcFacade
	interval    time.Duration
	logger      *slog.Logger
}

// NewReconciler creates a reconciler. A non-positive interval disables it.
func NewReconciler(budgetSpent portssvc.BudgetSpentSvcFacade, interval time.Duration, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		budgetSpent: budgetSpent,
		interval:    interval,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled, reconciling on every tick. It runs one
// pass immediately on startup to repair drift left by a previous crash.
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("Budget reconciliation disabled")
		return
	}

	r.logger.Info("Budget reconciliation started", slog.Duration("interval", r.interval))
	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Budget reconciliation stopped")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Reconciler) runOnce(ctx context.Context) {
	changed, err := r.budgetSpent.ReconcileAll(ctx)
	if err != nil {
		r.logger.Error("Budget reconciliation pass failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Debug("Budget reconciliation pass finished", slog.Int64("budgets_changed", changed))
}
