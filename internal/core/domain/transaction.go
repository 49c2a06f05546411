package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Category classifies a transaction or a budget. Income and expense
// transactions draw from different category sets; budgets always use the
// expense set.
type Category string

const (
	// Income categories
	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryInvestments Category = "investments"

	// Expense categories
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHousing       Category = "housing"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"

	// Valid for both sets
	CategoryOther Category = "other"
)

var incomeCategories = map[Category]struct{}{
	CategorySalary:      {},
	CategoryFreelance:   {},
	CategoryInvestments: {},
	CategoryOther:       {},
}

var expenseCategories = map[Category]struct{}{
	CategoryFood:          {},
	CategoryTransport:     {},
	CategoryHousing:       {},
	CategoryHealth:        {},
	CategoryEducation:     {},
	CategoryEntertainment: {},
	CategoryUtilities:     {},
	CategoryOther:         {},
}

// ValidForType reports whether the category belongs to the set allowed for
// the given transaction type.
func (c Category) ValidForType(t TransactionType) bool {
	if t == Income {
		_, ok := incomeCategories[c]
		return ok
	}
	_, ok := expenseCategories[c]
	return ok
}

// ValidBudgetCategory reports whether the category may be used for a budget.
func ValidBudgetCategory(c Category) bool {
	_, ok := expenseCategories[c]
	return ok
}

// PaymentMethod records how a transaction was settled.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentTransfer   PaymentMethod = "transfer"
	PaymentOther      PaymentMethod = "other"
)

// RecurringFrequency is informational only; nothing in the core schedules
// recurring transactions.
type RecurringFrequency string

const (
	FrequencyWeekly   RecurringFrequency = "weekly"
	FrequencyBiweekly RecurringFrequency = "biweekly"
	FrequencyMonthly  RecurringFrequency = "monthly"
	FrequencyYearly   RecurringFrequency = "yearly"
)

// Transaction represents a single recorded income or expense event,
// optionally linked to a budget. The budget link is weak: a transaction may
// outlive the budget it referenced.
type Transaction struct {
	TransactionID      string              `json:"transactionID"`
	UserID             string              `json:"userID"`
	BudgetID           *string             `json:"budgetID,omitempty"`
	Type               TransactionType     `json:"type"`
	Category           Category            `json:"category"`
	Amount             decimal.Decimal     `json:"amount"` // Always positive
	Description        string              `json:"description"`
	Date               time.Time           `json:"date"`
	PaymentMethod      PaymentMethod       `json:"paymentMethod"`
	Notes              string              `json:"notes,omitempty"`
	Tags               []string            `json:"tags,omitempty"`
	IsRecurring        bool                `json:"isRecurring"`
	RecurringFrequency *RecurringFrequency `json:"recurringFrequency,omitempty"`
	AuditFields
}

// ContributesToBudget reports whether the transaction counts toward a
// budget's spent total: only linked expenses do.
func (t *Transaction) ContributesToBudget() bool {
	return t.Type == Expense && t.BudgetID != nil
}
