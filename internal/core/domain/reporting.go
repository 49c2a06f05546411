package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodTotals aggregates transaction amounts over some date window.
type PeriodTotals struct {
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	TransactionCount int             `json:"transactionCount"`
}

// Balance returns income minus expense for the period.
func (p PeriodTotals) Balance() decimal.Decimal {
	return p.Income.Sub(p.Expense)
}

// CategoryTotal is the summed expense amount for a single category.
type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// PaymentMethodTotal is the summed expense amount for a single payment method.
type PaymentMethodTotal struct {
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"count"`
}

// CategoryShare is a category total annotated with its share of overall
// spend, rounded to two decimal places. A zero overall spend yields 0.
type CategoryShare struct {
	CategoryTotal
	Percentage decimal.Decimal `json:"percentage"`
}

// BudgetHealthStatus bands a budget's usage for dashboard display.
type BudgetHealthStatus string

const (
	HealthGood    BudgetHealthStatus = "good"
	HealthWarning BudgetHealthStatus = "warning"
	HealthOver    BudgetHealthStatus = "over"
)

var eighty = decimal.NewFromInt(80)

// HealthFor bands a percentage-used value: over above 100, warning within
// [80, 100], good below 80.
func HealthFor(percentageUsed decimal.Decimal) BudgetHealthStatus {
	switch {
	case percentageUsed.GreaterThan(hundred):
		return HealthOver
	case percentageUsed.GreaterThanOrEqual(eighty):
		return HealthWarning
	default:
		return HealthGood
	}
}

// BudgetHealth is a budget snapshot annotated with its derived values and
// health banding.
type BudgetHealth struct {
	BudgetID       string             `json:"budgetID"`
	Name           string             `json:"name"`
	Category       Category           `json:"category"`
	Amount         decimal.Decimal    `json:"amount"`
	Spent          decimal.Decimal    `json:"spent"`
	Remaining      decimal.Decimal    `json:"remaining"`
	PercentageUsed decimal.Decimal    `json:"percentageUsed"`
	Status         BudgetHealthStatus `json:"status"`
}

// MonthlyTotals is one month's slice of a monthly comparison report.
type MonthlyTotals struct {
	Year             int             `json:"year"`
	Month            time.Month      `json:"month"`
	Label            string          `json:"label"` // e.g. "January 2026"
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

// DashboardSummary is the per-user overview for the current calendar month.
type DashboardSummary struct {
	MonthIncome        decimal.Decimal `json:"monthIncome"`
	MonthExpense       decimal.Decimal `json:"monthExpense"`
	MonthBalance       decimal.Decimal `json:"monthBalance"`
	TransactionCount   int             `json:"transactionCount"`
	ActiveBudgetCount  int             `json:"activeBudgetCount"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
	BudgetHealth       []BudgetHealth  `json:"budgetHealth"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
}

// UserCounts breaks down the user population for the admin overview.
type UserCounts struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Admins    int64 `json:"admins"`
	Employees int64 `json:"employees"`
}

// BudgetCounts breaks down the budget population for the admin overview.
type BudgetCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// GlobalTotals sums all transactions network-wide.
type GlobalTotals struct {
	TransactionCount int64           `json:"transactionCount"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Balance          decimal.Decimal `json:"balance"`
}

// UserActivity ranks a user by transaction volume.
type UserActivity struct {
	UserID            string     `json:"userID"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Role              UserRole   `json:"role"`
	TransactionCount  int64      `json:"transactionCount"`
	LastTransactionAt *time.Time `json:"lastTransactionAt,omitempty"`
}

// AdminOverview is the cross-account rollup visible only to admins.
type AdminOverview struct {
	Users        UserCounts     `json:"users"`
	Budgets      BudgetCounts   `json:"budgets"`
	Transactions GlobalTotals   `json:"transactions"`
	TopUsers     []UserActivity `json:"topUsers"`
}
