package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// BudgetService implements budget CRUD. It never writes spent; that column
// belongs to the spent tracker and the reconciler.
type BudgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
}

// NewBudgetService creates a new budget service.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
) *BudgetService {
	return &BudgetService{
		BaseService: BaseService{UserRepo: userRepo},
		budgetRepo:  budgetRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*BudgetService)(nil)

var validPeriods = map[domain.BudgetPeriod]struct{}{
	domain.PeriodMonthly:   {},
	domain.PeriodQuarterly: {},
	domain.PeriodYearly:    {},
}

// validateBudgetFields checks the invariants shared by create and update.
func validateBudgetFields(b *domain.Budget) error {
	if !domain.ValidBudgetCategory(b.Category) {
		return fmt.Errorf("%w: category %q is not a valid budget category", apperrors.ErrValidation, b.Category)
	}
	if _, ok := validPeriods[b.Period]; !ok {
		return fmt.Errorf("%w: unknown period %q", apperrors.ErrValidation, b.Period)
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if !b.EndDate.After(b.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", apperrors.ErrInvalidPeriod)
	}
	return nil
}

// CreateBudget creates a new budget for the requesting user. spent always
// starts at zero.
func (s *BudgetService) CreateBudget(ctx context.Context, requestingUserID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	now := time.Now()

	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      requestingUserID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Period:      req.Period,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    true,
		Spent:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := validateBudgetFields(&budget); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category", string(budget.Category)))
	return &budget, nil
}

// GetBudgetByID retrieves a budget visible to the requesting user.
func (s *BudgetService) GetBudgetByID(ctx context.Context, budgetID string, requestingUserID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwnerOrAdmin(ctx, budget.UserID, requestingUserID); err != nil {
		return nil, err
	}
	return budget, nil
}

// ListBudgets retrieves the requesting user's budgets, newest first.
func (s *BudgetService) ListBudgets(ctx context.Context, requestingUserID string, filter dto.BudgetListFilter, limit, offset int) ([]domain.Budget, error) {
	repoFilter := portsrepo.BudgetListFilter{
		Category: filter.Category,
		Period:   filter.Period,
		IsActive: filter.IsActive,
	}
	budgets, err := s.budgetRepo.FindBudgetsByUser(ctx, requestingUserID, repoFilter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

// GetBudgetDetails retrieves a budget together with its linked transactions.
func (s *BudgetService) GetBudgetDetails(ctx context.Context, budgetID string, requestingUserID string, limit, offset int) (*dto.BudgetDetailsResponse, error) {
	budget, err := s.GetBudgetByID(ctx, budgetID, requestingUserID)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.FindTransactionsByBudget(ctx, budgetID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget transactions", slog.String("budget_id", budgetID))
		return nil, err
	}

	return &dto.BudgetDetailsResponse{
		Budget:       dto.ToBudgetResponse(budget),
		Transactions: dto.ToListTransactionResponse(txns),
	}, nil
}

// GetBudgetSummary aggregates the user's currently active budgets.
func (s *BudgetService) GetBudgetSummary(ctx context.Context, requestingUserID string) (*dto.BudgetSummaryResponse, error) {
	budgets, err := s.budgetRepo.FindActiveBudgetsAt(ctx, requestingUserID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to load active budgets", slog.String("user_id", requestingUserID))
		return nil, err
	}

	summary := &dto.BudgetSummaryResponse{
		ActiveBudgetCount: len(budgets),
		TotalBudgeted:     decimal.Zero,
		TotalSpent:        decimal.Zero,
		TotalRemaining:    decimal.Zero,
		ByCategory:        []dto.BudgetCategoryRollup{},
		OverBudget:        []dto.BudgetResponse{},
		NearLimit:         []dto.BudgetResponse{},
		Budgets:           dto.ToListBudgetResponse(budgets),
	}

	categoryIndex := map[domain.Category]int{}
	for i := range budgets {
		b := &budgets[i]
		summary.TotalBudgeted = summary.TotalBudgeted.Add(b.Amount)
		summary.TotalSpent = summary.TotalSpent.Add(b.Spent)

		idx, ok := categoryIndex[b.Category]
		if !ok {
			idx = len(summary.ByCategory)
			categoryIndex[b.Category] = idx
			summary.ByCategory = append(summary.ByCategory, dto.BudgetCategoryRollup{
				Category:  b.Category,
				Allocated: decimal.Zero,
				Spent:     decimal.Zero,
			})
		}
		summary.ByCategory[idx].Allocated = summary.ByCategory[idx].Allocated.Add(b.Amount)
		summary.ByCategory[idx].Spent = summary.ByCategory[idx].Spent.Add(b.Spent)

		switch domain.HealthFor(b.PercentageUsed()) {
		case domain.HealthOver:
			summary.OverBudget = append(summary.OverBudget, dto.ToBudgetResponse(b))
		case domain.HealthWarning:
			summary.NearLimit = append(summary.NearLimit, dto.ToBudgetResponse(b))
		}
	}
	summary.TotalRemaining = summary.TotalBudgeted.Sub(summary.TotalSpent)

	return summary, nil
}

// applyBudgetUpdate builds the updated budget from the request. spent is
// carried over untouched.
func applyBudgetUpdate(before domain.Budget, req dto.UpdateBudgetRequest, requestingUserID string, now time.Time) domain.Budget {
	after := before

	if req.Name != nil {
		after.Name = *req.Name
	}
	if req.Description != nil {
		after.Description = *req.Description
	}
	if req.Category != nil {
		after.Category = *req.Category
	}
	if req.Amount != nil {
		after.Amount = *req.Amount
	}
	if req.Period != nil {
		after.Period = *req.Period
	}
	if req.StartDate != nil {
		after.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		after.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		after.IsActive = *req.IsActive
	}

	after.LastUpdatedAt = now
	after.LastUpdatedBy = requestingUserID
	return after
}

// UpdateBudget updates a budget's definition fields.
func (s *BudgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error) {
	before, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwnerOrAdmin(ctx, before.UserID, requestingUserID); err != nil {
		return nil, err
	}

	after := applyBudgetUpdate(*before, req, requestingUserID, time.Now())

	if err := validateBudgetFields(&after); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.UpdateBudget(ctx, after); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget updated", slog.String("budget_id", budgetID))
	return &after, nil
}

// DeleteBudget detaches the budget's transactions and removes the budget.
func (s *BudgetService) DeleteBudget(ctx context.Context, budgetID string, requestingUserID string) error {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeOwnerOrAdmin(ctx, budget.UserID, requestingUserID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}

	s.LogInfo(ctx, "Budget deleted, transactions detached", slog.String("budget_id", budgetID))
	return nil
}
