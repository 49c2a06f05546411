package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Type/category pairing and the optional budget link are validated at the
// service layer.
type CreateTransactionRequest struct {
	Type               domain.TransactionType     `json:"type" binding:"required,oneof=income expense"`
	Category           domain.Category            `json:"category" binding:"required"`
	Amount             decimal.Decimal            `json:"amount" binding:"required"`
	Description        string                     `json:"description" binding:"required,min=1,max=200"`
	Date               time.Time                  `json:"date" binding:"required"`
	BudgetID           *string                    `json:"budgetID"`
	PaymentMethod      domain.PaymentMethod       `json:"paymentMethod" binding:"omitempty,oneof=cash debit_card credit_card transfer other"`
	Notes              string                     `json:"notes" binding:"max=1000"`
	Tags               []string                   `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
	IsRecurring        bool                       `json:"isRecurring"`
	RecurringFrequency *domain.RecurringFrequency `json:"recurringFrequency" binding:"omitempty,oneof=weekly biweekly monthly yearly"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Use pointers to distinguish between zero-value updates and
// fields not provided. ClearBudget breaks the budget link; it wins over
// BudgetID when both are sent.
type UpdateTransactionRequest struct {
	Type               *domain.TransactionType     `json:"type" binding:"omitempty,oneof=income expense"`
	Category           *domain.Category            `json:"category"`
	Amount             *decimal.Decimal            `json:"amount"`
	Description        *string                     `json:"description" binding:"omitempty,min=1,max=200"`
	Date               *time.Time                  `json:"date"`
	BudgetID           *string                     `json:"budgetID"`
	ClearBudget        bool                        `json:"clearBudget"`
	PaymentMethod      *domain.PaymentMethod       `json:"paymentMethod" binding:"omitempty,oneof=cash debit_card credit_card transfer other"`
	Notes              *string                     `json:"notes" binding:"omitempty,max=1000"`
	Tags               []string                    `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
	IsRecurring        *bool                       `json:"isRecurring"`
	RecurringFrequency *domain.RecurringFrequency  `json:"recurringFrequency" binding:"omitempty,oneof=weekly biweekly monthly yearly"`
}

// TransactionListFilter defines query parameters for listing transactions.
type TransactionListFilter struct {
	Type     *domain.TransactionType `form:"type" binding:"omitempty,oneof=income expense"`
	Category *domain.Category        `form:"category"`
	BudgetID *string                 `form:"budgetID"`
	From     *time.Time              `form:"from" time_format:"2006-01-02"`
	To       *time.Time              `form:"to" time_format:"2006-01-02"`
}

// TransactionStatsRequest defines the date range for the stats endpoint.
// An empty range defaults to the current calendar month.
type TransactionStatsRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// TransactionStatsResponse aggregates a user's transactions over a range.
type TransactionStatsResponse struct {
	From             time.Time                   `json:"from"`
	To               time.Time                   `json:"to"`
	Income           decimal.Decimal             `json:"income"`
	Expense          decimal.Decimal             `json:"expense"`
	Balance          decimal.Decimal             `json:"balance"`
	TransactionCount int                         `json:"transactionCount"`
	ByCategory       []domain.CategoryTotal      `json:"byCategory"`
	ByPaymentMethod  []domain.PaymentMethodTotal `json:"byPaymentMethod"`
	Recent           []TransactionResponse       `json:"recent"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                     `json:"transactionID"`
	UserID             string                     `json:"userID"`
	BudgetID           *string                    `json:"budgetID,omitempty"`
	Type               domain.TransactionType     `json:"type"`
	Category           domain.Category            `json:"category"`
	Amount             decimal.Decimal            `json:"amount"`
	Description        string                     `json:"description"`
	Date               time.Time                  `json:"date"`
	PaymentMethod      domain.PaymentMethod       `json:"paymentMethod"`
	Notes              string                     `json:"notes,omitempty"`
	Tags               []string                   `json:"tags,omitempty"`
	IsRecurring        bool                       `json:"isRecurring"`
	RecurringFrequency *domain.RecurringFrequency `json:"recurringFrequency,omitempty"`
	CreatedAt          time.Time                  `json:"createdAt"`
	LastUpdatedAt      time.Time                  `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      t.TransactionID,
		UserID:             t.UserID,
		BudgetID:           t.BudgetID,
		Type:               t.Type,
		Category:           t.Category,
		Amount:             t.Amount,
		Description:        t.Description,
		Date:               t.Date,
		PaymentMethod:      t.PaymentMethod,
		Notes:              t.Notes,
		Tags:               t.Tags,
		IsRecurring:        t.IsRecurring,
		RecurringFrequency: t.RecurringFrequency,
		CreatedAt:          t.CreatedAt,
		LastUpdatedAt:      t.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to TransactionResponse DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}
