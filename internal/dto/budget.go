package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a new budget.
// Category and period are validated against the domain sets at the service
// layer so the error can carry the offending value.
type CreateBudgetRequest struct {
	Name        string              `json:"name" binding:"required,min=1,max=100"`
	Description string              `json:"description" binding:"max=500"`
	Category    domain.Category     `json:"category" binding:"required"`
	Amount      decimal.Decimal     `json:"amount" binding:"required"`
	Period      domain.BudgetPeriod `json:"period" binding:"required"`
	StartDate   time.Time           `json:"startDate" binding:"required"`
	EndDate     time.Time           `json:"endDate" binding:"required"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// Use pointers to distinguish between zero-value updates and fields not
// provided. spent is deliberately absent.
type UpdateBudgetRequest struct {
	Name        *string              `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string              `json:"description" binding:"omitempty,max=500"`
	Category    *domain.Category     `json:"category"`
	Amount      *decimal.Decimal     `json:"amount"`
	Period      *domain.BudgetPeriod `json:"period"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
	IsActive    *bool                `json:"isActive"`
}

// BudgetListFilter defines query parameters for listing budgets.
type BudgetListFilter struct {
	Category *domain.Category     `form:"category"`
	Period   *domain.BudgetPeriod `form:"period"`
	IsActive *bool                `form:"isActive"`
}

// BudgetResponse defines the data returned for a budget, including the
// derived remaining and percentage-used values.
type BudgetResponse struct {
	BudgetID       string              `json:"budgetID"`
	UserID         string              `json:"userID"`
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	Category       domain.Category     `json:"category"`
	Amount         decimal.Decimal     `json:"amount"`
	Period         domain.BudgetPeriod `json:"period"`
	StartDate      time.Time           `json:"startDate"`
	EndDate        time.Time           `json:"endDate"`
	IsActive       bool                `json:"isActive"`
	Spent          decimal.Decimal     `json:"spent"`
	Remaining      decimal.Decimal     `json:"remaining"`
	PercentageUsed decimal.Decimal     `json:"percentageUsed"`
	CreatedAt      time.Time           `json:"createdAt"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
}

// BudgetDetailsResponse is a budget together with its linked transactions.
type BudgetDetailsResponse struct {
	Budget       BudgetResponse        `json:"budget"`
	Transactions []TransactionResponse `json:"transactions"`
}

// BudgetCategoryRollup sums the active budgets sharing a category.
type BudgetCategoryRollup struct {
	Category  domain.Category `json:"category"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
}

// BudgetSummaryResponse aggregates a user's currently active budgets.
// OverBudget lists budgets past their cap; NearLimit lists budgets in the
// warning band.
type BudgetSummaryResponse struct {
	ActiveBudgetCount int                    `json:"activeBudgetCount"`
	TotalBudgeted     decimal.Decimal        `json:"totalBudgeted"`
	TotalSpent        decimal.Decimal        `json:"totalSpent"`
	TotalRemaining    decimal.Decimal        `json:"totalRemaining"`
	ByCategory        []BudgetCategoryRollup `json:"byCategory"`
	OverBudget        []BudgetResponse       `json:"overBudget"`
	NearLimit         []BudgetResponse       `json:"nearLimit"`
	Budgets           []BudgetResponse       `json:"budgets"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		UserID:         b.UserID,
		Name:           b.Name,
		Description:    b.Description,
		Category:       b.Category,
		Amount:         b.Amount,
		Period:         b.Period,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		IsActive:       b.IsActive,
		Spent:          b.Spent,
		Remaining:      b.Remaining(),
		PercentageUsed: b.PercentageUsed(),
		CreatedAt:      b.CreatedAt,
		LastUpdatedAt:  b.LastUpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of domain.Budget to BudgetResponse DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}
