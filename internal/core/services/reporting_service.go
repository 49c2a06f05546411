package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

const (
	recentTransactionLimit = 5
	topUserLimit           = 10
)

// ReportingService assembles read-only reports from pre-aggregated SQL
// results. Reports never read budgets.spent through any path other than the
// budget rows themselves, so a report is always consistent with what the
// budget endpoints return.
type ReportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	budgetRepo    portsrepo.BudgetRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepositoryFacade,
	budgetRepo portsrepo.BudgetRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
) *ReportingService {
	return &ReportingService{
		BaseService:   BaseService{UserRepo: userRepo},
		reportingRepo: reportingRepo,
		budgetRepo:    budgetRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// resolveTarget decides whose data the report covers. Admins may target any
// user; everyone else gets their own data.
func (s *ReportingService) resolveTarget(ctx context.Context, requestingUserID, targetUserID string) (string, error) {
	if targetUserID == "" || targetUserID == requestingUserID {
		return requestingUserID, nil
	}
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return "", err
	}
	return targetUserID, nil
}

// DashboardSummary builds the current-month dashboard.
func (s *ReportingService) DashboardSummary(ctx context.Context, requestingUserID string, targetUserID string) (*domain.DashboardSummary, error) {
	userID, err := s.resolveTarget(ctx, requestingUserID, targetUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from, to := monthRange(now)

	totals, err := s.reportingRepo.GetPeriodTotals(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dashboard totals", slog.String("user_id", userID))
		return nil, err
	}

	byCategory, err := s.reportingRepo.GetExpenseTotalsByCategory(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dashboard category totals", slog.String("user_id", userID))
		return nil, err
	}

	budgets, err := s.budgetRepo.FindActiveBudgetsAt(ctx, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to load active budgets for dashboard", slog.String("user_id", userID))
		return nil, err
	}

	health := make([]domain.BudgetHealth, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		pct := b.PercentageUsed()
		health[i] = domain.BudgetHealth{
			BudgetID:       b.BudgetID,
			Name:           b.Name,
			Category:       b.Category,
			Amount:         b.Amount,
			Spent:          b.Spent,
			Remaining:      b.Remaining(),
			PercentageUsed: pct,
			Status:         domain.HealthFor(pct),
		}
	}

	recent, err := s.reportingRepo.FindRecentTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recent transactions", slog.String("user_id", userID))
		return nil, err
	}

	return &domain.DashboardSummary{
		MonthIncome:        totals.Income,
		MonthExpense:       totals.Expense,
		MonthBalance:       totals.Balance(),
		TransactionCount:   totals.TransactionCount,
		ActiveBudgetCount:  len(budgets),
		ExpensesByCategory: byCategory,
		BudgetHealth:       health,
		RecentTransactions: recent,
	}, nil
}

// MonthlyReport compares income and expense across the last N calendar
// months, oldest first. Months with no transactions appear with zero totals,
// so the slice always has exactly N entries.
func (s *ReportingService) MonthlyReport(ctx context.Context, requestingUserID string, targetUserID string, months int) ([]domain.MonthlyTotals, error) {
	if months < 1 {
		return nil, fmt.Errorf("%w: months must be at least 1", apperrors.ErrValidation)
	}
	userID, err := s.resolveTarget(ctx, requestingUserID, targetUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := thisMonth.AddDate(0, -(months - 1), 0)
	to := thisMonth.AddDate(0, 1, 0)

	rows, err := s.reportingRepo.GetMonthlyTotals(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load monthly totals", slog.String("user_id", userID))
		return nil, err
	}

	byMonth := make(map[string]domain.MonthlyTotals, len(rows))
	for _, row := range rows {
		byMonth[fmt.Sprintf("%d-%d", row.Year, row.Month)] = row
	}

	report := make([]domain.MonthlyTotals, 0, months)
	for cursor := from; cursor.Before(to); cursor = cursor.AddDate(0, 1, 0) {
		entry, ok := byMonth[fmt.Sprintf("%d-%d", cursor.Year(), cursor.Month())]
		if !ok {
			entry = domain.MonthlyTotals{
				Year:    cursor.Year(),
				Month:   cursor.Month(),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
				Balance: decimal.Zero,
			}
		}
		entry.Label = fmt.Sprintf("%s %d", cursor.Month(), cursor.Year())
		report = append(report, entry)
	}

	return report, nil
}

// CategorySpendingReport breaks expenses down by category over a date range,
// largest share first. Each share is the category's portion of the overall
// spend, rounded to two decimal places. The window defaults to unbounded:
// omitted ends fall back to sentinel bounds wide enough to cover any
// recorded transaction.
func (s *ReportingService) CategorySpendingReport(ctx context.Context, requestingUserID string, targetUserID string, req dto.CategoryReportRequest) ([]domain.CategoryShare, error) {
	userID, err := s.resolveTarget(ctx, requestingUserID, targetUserID)
	if err != nil {
		return nil, err
	}

	from := time.Time{}
	to := time.Now().AddDate(1000, 0, 0)
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: report range end must be after start", apperrors.ErrValidation)
	}

	totals, err := s.reportingRepo.GetExpenseTotalsByCategory(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load category spending", slog.String("user_id", userID))
		return nil, err
	}

	grandTotal := decimal.Zero
	for _, t := range totals {
		grandTotal = grandTotal.Add(t.Total)
	}

	shares := make([]domain.CategoryShare, len(totals))
	for i, t := range totals {
		pct := decimal.Zero
		if grandTotal.IsPositive() {
			pct = t.Total.Div(grandTotal).Mul(hundredPct).Round(2)
		}
		shares[i] = domain.CategoryShare{CategoryTotal: t, Percentage: pct}
	}

	return shares, nil
}

var hundredPct = decimal.NewFromInt(100)

// AdminOverview summarizes the whole system for admins.
func (s *ReportingService) AdminOverview(ctx context.Context, requestingUserID string) (*domain.AdminOverview, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	users, err := s.reportingRepo.CountUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count users")
		return nil, err
	}
	budgets, err := s.reportingRepo.CountBudgets(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count budgets")
		return nil, err
	}
	totals, err := s.reportingRepo.GetGlobalTransactionTotals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load global totals")
		return nil, err
	}
	topUsers, err := s.reportingRepo.FindTopUsersByTransactionCount(ctx, topUserLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load top users")
		return nil, err
	}

	return &domain.AdminOverview{
		Users:        *users,
		Budgets:      *budgets,
		Transactions: *totals,
		TopUsers:     topUsers,
	}, nil
}
