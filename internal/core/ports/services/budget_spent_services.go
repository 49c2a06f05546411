package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
)

// BudgetSpentSvcFacade is the single owner of the budgets.spent accumulator.
// The transaction service calls it after every lifecycle change; nothing else
// writes spent except the reconciler.
type BudgetSpentSvcFacade interface {
	// ApplyTransactionCreated adds the transaction's contribution, if any.
	ApplyTransactionCreated(ctx context.Context, txn *domain.Transaction) error

	// ApplyTransactionUpdated retracts the before-image's contribution and
	// applies the after-image's. When both images point at the same budget
	// the two are collapsed into a single net adjustment.
	ApplyTransactionUpdated(ctx context.Context, before, after *domain.Transaction) error

	// ApplyTransactionDeleted retracts the transaction's contribution, if any.
	ApplyTransactionDeleted(ctx context.Context, txn *domain.Transaction) error

	// ReconcileBudget rebuilds one budget's spent from its linked expenses.
	ReconcileBudget(ctx context.Context, budgetID string) (decimal.Decimal, error)

	// ReconcileAll rebuilds spent for every budget and returns how many changed.
	ReconcileAll(ctx context.Context) (int64, error)
}
