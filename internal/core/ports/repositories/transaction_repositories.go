package repositories

import (
	"context"
	"time"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
)

// TransactionListFilter narrows the transactions returned by FindTransactionsByUser.
type TransactionListFilter struct {
	Type     *domain.TransactionType
	Category *domain.Category
	BudgetID *string
	From     *time.Time
	To       *time.Time
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByUser retrieves a user's transactions, newest first by date.
	FindTransactionsByUser(ctx context.Context, userID string, filter TransactionListFilter, limit int, offset int) ([]domain.Transaction, error)

	// FindTransactionsByBudget retrieves transactions linked to a budget, newest first by date.
	FindTransactionsByBudget(ctx context.Context, budgetID string, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
