package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
)

// BudgetSpentService owns the budgets.spent accumulator. Every transaction
// lifecycle event funnels through here; the arithmetic itself happens inside
// the database so concurrent writers cannot lose increments.
//
// A missing budget is never an error on the retract side: the budget may
// have been deleted between the transaction's write and this call, and a
// deleted budget has no spent to maintain.
type BudgetSpentService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetSpentService creates the single spent-tracking service instance.
func NewBudgetSpentService(budgetRepo portsrepo.BudgetRepositoryFacade) *BudgetSpentService {
	return &BudgetSpentService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSpentSvcFacade = (*BudgetSpentService)(nil)

// contribution returns the amount the transaction adds to its budget's
// spent, or zero with false when it contributes nothing.
func contribution(txn *domain.Transaction) (string, decimal.Decimal, bool) {
	if txn == nil || !txn.ContributesToBudget() {
		return "", decimal.Zero, false
	}
	return *txn.BudgetID, txn.Amount, true
}

func (s *BudgetSpentService) adjust(ctx context.Context, budgetID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	err := s.budgetRepo.AdjustSpent(ctx, budgetID, delta)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Budget gone; nothing left to maintain.
			s.LogDebug(ctx, "Skipping spent adjustment for missing budget", slog.String("budget_id", budgetID))
			return nil
		}
		s.LogError(ctx, err, "Failed to adjust budget spent", slog.String("budget_id", budgetID), slog.String("delta", delta.String()))
		return err
	}
	return nil
}

// ApplyTransactionCreated adds the transaction's contribution, if any.
func (s *BudgetSpentService) ApplyTransactionCreated(ctx context.Context, txn *domain.Transaction) error {
	budgetID, amount, ok := contribution(txn)
	if !ok {
		return nil
	}
	return s.adjust(ctx, budgetID, amount)
}

// ApplyTransactionUpdated retracts the before-image's contribution and
// applies the after-image's. When both images point at the same budget the
// two adjustments collapse into one net delta, which is skipped entirely
// when it nets to zero.
func (s *BudgetSpentService) ApplyTransactionUpdated(ctx context.Context, before, after *domain.Transaction) error {
	oldBudgetID, oldAmount, oldOK := contribution(before)
	newBudgetID, newAmount, newOK := contribution(after)

	if oldOK && newOK && oldBudgetID == newBudgetID {
		return s.adjust(ctx, oldBudgetID, newAmount.Sub(oldAmount))
	}

	if oldOK {
		if err := s.adjust(ctx, oldBudgetID, oldAmount.Neg()); err != nil {
			return err
		}
	}
	if newOK {
		return s.adjust(ctx, newBudgetID, newAmount)
	}
	return nil
}

// ApplyTransactionDeleted retracts the transaction's contribution, if any.
func (s *BudgetSpentService) ApplyTransactionDeleted(ctx context.Context, txn *domain.Transaction) error {
	budgetID, amount, ok := contribution(txn)
	if !ok {
		return nil
	}
	return s.adjust(ctx, budgetID, amount.Neg())
}

// ReconcileBudget rebuilds one budget's spent from its linked expenses.
func (s *BudgetSpentService) ReconcileBudget(ctx context.Context, budgetID string) (decimal.Decimal, error) {
	spent, err := s.budgetRepo.RecomputeSpent(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to reconcile budget", slog.String("budget_id", budgetID))
		}
		return decimal.Zero, err
	}
	s.LogInfo(ctx, "Budget reconciled", slog.String("budget_id", budgetID), slog.String("spent", spent.String()))
	return spent, nil
}

// ReconcileAll rebuilds spent for every budget and returns how many changed.
func (s *BudgetSpentService) ReconcileAll(ctx context.Context) (int64, error) {
	changed, err := s.budgetRepo.RecomputeAllSpent(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile budgets")
		return 0, err
	}
	if changed > 0 {
		s.LogInfo(ctx, "Budget reconciliation corrected drift", slog.Int64("budgets_changed", changed))
	}
	return changed, nil
}
