package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the nominal cadence of a budget window.
type BudgetPeriod string

const (
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

var hundred = decimal.NewFromInt(100)

// Budget is a capped spending allowance for a category over a time window.
// Spent is a denormalized running total of the expense transactions linked
// to the budget; it is maintained exclusively by the spent-tracking service
// and must never be written by external callers.
type Budget struct {
	BudgetID    string          `json:"budgetID"`
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"` // Non-negative
	Period      BudgetPeriod    `json:"period"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"` // Always after StartDate
	IsActive    bool            `json:"isActive"`
	Spent       decimal.Decimal `json:"spent"`
	AuditFields
}

// Remaining returns the unspent portion of the budget. It may be negative
// when the budget is overrun.
func (b *Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// PercentageUsed returns spent as a percentage of the budget amount.
// A zero-amount budget reports 0, never an error.
func (b *Budget) PercentageUsed() decimal.Decimal {
	if !b.Amount.IsPositive() {
		return decimal.Zero
	}
	return b.Spent.Div(b.Amount).Mul(hundred)
}

// WindowContains reports whether t falls within [StartDate, EndDate],
// boundaries included.
func (b *Budget) WindowContains(t time.Time) bool {
	return !t.Before(b.StartDate) && !t.After(b.EndDate)
}
