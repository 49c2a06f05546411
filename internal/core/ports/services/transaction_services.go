package services

import (
	"context"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction visible to the requesting user.
	GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves the requesting user's transactions, newest first.
	ListTransactions(ctx context.Context, requestingUserID string, filter dto.TransactionListFilter, limit, offset int) ([]domain.Transaction, error)

	// GetTransactionStats aggregates the user's transactions over a date range.
	GetTransactionStats(ctx context.Context, requestingUserID string, req dto.TransactionStatsRequest) (*dto.TransactionStatsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction validates the budget link, persists the transaction
	// and applies its budget contribution.
	CreateTransaction(ctx context.Context, requestingUserID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction persists changes and moves the budget contribution
	// from the before-image to the after-image.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes the transaction and retracts its contribution.
	DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
