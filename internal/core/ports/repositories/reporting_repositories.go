package repositories

import (
	"context"
	"time"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
)

// ReportingReader defines the aggregate queries backing the reporting endpoints.
// All aggregation happens in SQL; services only assemble the results.
type ReportingReader interface {
	// GetPeriodTotals sums income and expense amounts for a user within [from, to).
	GetPeriodTotals(ctx context.Context, userID string, from, to time.Time) (*domain.PeriodTotals, error)

	// GetExpenseTotalsByCategory sums a user's expenses per category within
	// [from, to), largest total first.
	GetExpenseTotalsByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error)

	// GetExpenseTotalsByPaymentMethod sums a user's expenses per payment
	// method within [from, to), largest total first.
	GetExpenseTotalsByPaymentMethod(ctx context.Context, userID string, from, to time.Time) ([]domain.PaymentMethodTotal, error)

	// GetMonthlyTotals sums income and expense per calendar month for a user
	// within [from, to). Months with no transactions are absent from the result.
	GetMonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyTotals, error)

	// FindRecentTransactions retrieves a user's most recent transactions by date.
	FindRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)

	// CountUsers returns total and per-role user counts.
	CountUsers(ctx context.Context) (*domain.UserCounts, error)

	// CountBudgets returns total and active budget counts.
	CountBudgets(ctx context.Context) (*domain.BudgetCounts, error)

	// GetGlobalTransactionTotals sums income and expense across all users.
	GetGlobalTransactionTotals(ctx context.Context) (*domain.GlobalTotals, error)

	// FindTopUsersByTransactionCount lists the most active users by
	// transaction count, busiest first.
	FindTopUsersByTransactionCount(ctx context.Context, limit int) ([]domain.UserActivity, error)
}

// ReportingRepositoryFacade combines all reporting repository interfaces
type ReportingRepositoryFacade interface {
	ReportingReader
}
