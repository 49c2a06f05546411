package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
)

// BudgetListFilter narrows the budgets returned by FindBudgetsByUser.
// Zero values mean "no constraint".
type BudgetListFilter struct {
	Category *domain.Category
	Period   *domain.BudgetPeriod
	IsActive *bool
}

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its ID.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// FindBudgetsByUser retrieves budgets owned by a user, newest first.
	FindBudgetsByUser(ctx context.Context, userID string, filter BudgetListFilter, limit int, offset int) ([]domain.Budget, error)

	// FindActiveBudgetsAt retrieves a user's active budgets whose window contains at.
	FindActiveBudgetsAt(ctx context.Context, userID string, at time.Time) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget's details. It does not touch spent.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget detaches the budget's transactions and removes the budget,
	// both within a single database transaction.
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetSpentManager defines operations on the spent accumulator.
type BudgetSpentManager interface {
	// AdjustSpent atomically adds delta (which may be negative) to the
	// budget's spent column.
	AdjustSpent(ctx context.Context, budgetID string, delta decimal.Decimal) error

	// RecomputeSpent rebuilds spent for one budget from its linked expense
	// transactions and returns the recomputed value.
	RecomputeSpent(ctx context.Context, budgetID string) (decimal.Decimal, error)

	// RecomputeAllSpent rebuilds spent for every budget in one statement and
	// returns the number of budgets whose value changed.
	RecomputeAllSpent(ctx context.Context) (int64, error)
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
	BudgetSpentManager
}
