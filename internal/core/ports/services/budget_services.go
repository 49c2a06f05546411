package services

import (
	"context"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a budget visible to the requesting user.
	GetBudgetByID(ctx context.Context, budgetID string, requestingUserID string) (*domain.Budget, error)

	// ListBudgets retrieves the requesting user's budgets, newest first.
	ListBudgets(ctx context.Context, requestingUserID string, filter dto.BudgetListFilter, limit, offset int) ([]domain.Budget, error)

	// GetBudgetDetails retrieves a budget together with its linked transactions.
	GetBudgetDetails(ctx context.Context, budgetID string, requestingUserID string, limit, offset int) (*dto.BudgetDetailsResponse, error)

	// GetBudgetSummary aggregates the user's currently active budgets.
	GetBudgetSummary(ctx context.Context, requestingUserID string) (*dto.BudgetSummaryResponse, error)
}

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	// CreateBudget creates a new budget for the requesting user.
	CreateBudget(ctx context.Context, requestingUserID string, req dto.CreateBudgetRequest) (*domain.Budget, error)

	// UpdateBudget updates a budget's definition fields. spent is never
	// writable through this path.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error)

	// DeleteBudget detaches the budget's transactions and removes the budget.
	DeleteBudget(ctx context.Context, budgetID string, requestingUserID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
