package services

import (
	"context"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// ReportingSvcFacade defines operations for generating financial reports.
// targetUserID lets an admin request another user's reports; non-admins may
// only pass their own ID (or empty, meaning themselves).
type ReportingSvcFacade interface {
	// DashboardSummary builds the current-month dashboard: totals, budget
	// health and the most recent transactions.
	DashboardSummary(ctx context.Context, requestingUserID string, targetUserID string) (*domain.DashboardSummary, error)

	// MonthlyReport compares income and expense across the last N calendar
	// months, oldest first, including months with no activity.
	MonthlyReport(ctx context.Context, requestingUserID string, targetUserID string, months int) ([]domain.MonthlyTotals, error)

	// CategorySpendingReport breaks expenses down by category over a date
	// range, largest share first.
	CategorySpendingReport(ctx context.Context, requestingUserID string, targetUserID string, req dto.CategoryReportRequest) ([]domain.CategoryShare, error)

	// AdminOverview summarizes the whole system. Admin only.
	AdminOverview(ctx context.Context, requestingUserID string) (*domain.AdminOverview, error)
}
