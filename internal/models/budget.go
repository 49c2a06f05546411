package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the database representation of a spending allowance.
// Note: spent is only ever mutated through atomic increments or
// recomputation; it is never written from an application-side read.
type Budget struct {
	BudgetID    string          `json:"budgetID"`
	UserID      string          `json:"userID"` // FK -> User.userID
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Period      string          `json:"period"` // monthly, quarterly or yearly
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	IsActive    bool            `json:"isActive"`
	Spent       decimal.Decimal `json:"spent"`
	AuditFields
}
