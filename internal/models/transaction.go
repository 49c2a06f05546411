package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a single income or expense
// event. BudgetID is a weak, nullable reference: the row survives deletion
// of the budget it pointed to.
type Transaction struct {
	TransactionID      string          `json:"transactionID"`
	UserID             string          `json:"userID"`             // FK -> User.userID (Not Null)
	BudgetID           *string         `json:"budgetID,omitempty"` // FK -> Budget.budgetID (Nullable)
	Type               string          `json:"type"`               // income or expense
	Category           string          `json:"category"`
	Amount             decimal.Decimal `json:"amount"` // Positive value
	Description        string          `json:"description"`
	Date               time.Time       `json:"date"`
	PaymentMethod      string          `json:"paymentMethod"`
	Notes              string          `json:"notes"`
	Tags               []string        `json:"tags"`
	IsRecurring        bool            `json:"isRecurring"`
	RecurringFrequency *string         `json:"recurringFrequency,omitempty"`
	AuditFields
}
