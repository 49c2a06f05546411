package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// TransactionService implements the transaction lifecycle. Every write path
// persists the transaction first and only then notifies the spent tracker,
// so a failed persist never moves a budget's spent.
type TransactionService struct {
	BaseService
	txnRepo       portsrepo.TransactionRepositoryFacade
	budgetRepo    portsrepo.BudgetRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
	budgetSpent   portssvc.BudgetSpentSvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	budgetRepo portsrepo.BudgetRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	budgetSpent portssvc.BudgetSpentSvcFacade,
) *TransactionService {
	return &TransactionService{
		BaseService:   BaseService{UserRepo: userRepo},
		txnRepo:       txnRepo,
		budgetRepo:    budgetRepo,
		reportingRepo: reportingRepo,
		budgetSpent:   budgetSpent,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// validateTransactionFields checks the invariants shared by create and update.
func validateTransactionFields(txn *domain.Transaction) error {
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !txn.Category.ValidForType(txn.Type) {
		return fmt.Errorf("%w: category %q is not valid for %s transactions", apperrors.ErrValidation, txn.Category, txn.Type)
	}
	if txn.IsRecurring && txn.RecurringFrequency == nil {
		return fmt.Errorf("%w: recurring transactions require a frequency", apperrors.ErrValidation)
	}
	return nil
}

// validateBudgetLink enforces the link rules applied when a transaction is
// created against a budget: the budget must exist, belong to the same user,
// be active and cover the transaction date.
func (s *TransactionService) validateBudgetLink(ctx context.Context, budgetID string, userID string, date time.Time) error {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return err
	}
	if budget.UserID != userID {
		return fmt.Errorf("%w: budget belongs to another user", apperrors.ErrForbidden)
	}
	if !budget.IsActive {
		return fmt.Errorf("%w: budget %s", apperrors.ErrBudgetInactive, budgetID)
	}
	if !budget.WindowContains(date) {
		return fmt.Errorf("%w: transaction date %s is outside the budget window", apperrors.ErrDateOutOfRange, date.Format("2006-01-02"))
	}
	return nil
}

// CreateTransaction validates the optional budget link, persists the
// transaction and then applies its spent contribution.
func (s *TransactionService) CreateTransaction(ctx context.Context, requestingUserID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := time.Now()

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCash
	}

	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		UserID:             requestingUserID,
		BudgetID:           req.BudgetID,
		Type:               req.Type,
		Category:           req.Category,
		Amount:             req.Amount,
		Description:        req.Description,
		Date:               req.Date,
		PaymentMethod:      paymentMethod,
		Notes:              req.Notes,
		Tags:               req.Tags,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := validateTransactionFields(&txn); err != nil {
		return nil, err
	}

	if txn.BudgetID != nil {
		if err := s.validateBudgetLink(ctx, *txn.BudgetID, requestingUserID, txn.Date); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	if err := s.budgetSpent.ApplyTransactionCreated(ctx, &txn); err != nil {
		// The transaction is persisted; the reconciler will repair spent.
		s.LogError(ctx, err, "Failed to apply spent contribution after create", slog.String("transaction_id", txn.TransactionID))
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction visible to the requesting user.
func (s *TransactionService) GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwnerOrAdmin(ctx, txn.UserID, requestingUserID); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves the requesting user's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, requestingUserID string, filter dto.TransactionListFilter, limit, offset int) ([]domain.Transaction, error) {
	repoFilter := portsrepo.TransactionListFilter{
		Type:     filter.Type,
		Category: filter.Category,
		BudgetID: filter.BudgetID,
		From:     filter.From,
		To:       filter.To,
	}
	txns, err := s.txnRepo.FindTransactionsByUser(ctx, requestingUserID, repoFilter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// recentStatsLimit caps the recent-transactions slice in the stats response.
const recentStatsLimit = 10

// monthRange returns the half-open interval covering now's calendar month.
func monthRange(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}

// GetTransactionStats aggregates the user's transactions over a date range,
// defaulting to the current calendar month.
func (s *TransactionService) GetTransactionStats(ctx context.Context, requestingUserID string, req dto.TransactionStatsRequest) (*dto.TransactionStatsResponse, error) {
	from, to := monthRange(time.Now())
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: stats range end must be after start", apperrors.ErrValidation)
	}

	totals, err := s.reportingRepo.GetPeriodTotals(ctx, requestingUserID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute period totals", slog.String("user_id", requestingUserID))
		return nil, err
	}
	byCategory, err := s.reportingRepo.GetExpenseTotalsByCategory(ctx, requestingUserID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute category totals", slog.String("user_id", requestingUserID))
		return nil, err
	}
	byPaymentMethod, err := s.reportingRepo.GetExpenseTotalsByPaymentMethod(ctx, requestingUserID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute payment method totals", slog.String("user_id", requestingUserID))
		return nil, err
	}
	recent, err := s.txnRepo.FindTransactionsByUser(ctx, requestingUserID, portsrepo.TransactionListFilter{From: &from, To: &to}, recentStatsLimit, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recent transactions for stats", slog.String("user_id", requestingUserID))
		return nil, err
	}

	return &dto.TransactionStatsResponse{
		From:             from,
		To:               to,
		Income:           totals.Income,
		Expense:          totals.Expense,
		Balance:          totals.Balance(),
		TransactionCount: totals.TransactionCount,
		ByCategory:       byCategory,
		ByPaymentMethod:  byPaymentMethod,
		Recent:           dto.ToListTransactionResponse(recent),
	}, nil
}

// applyTransactionUpdate builds the after-image from the request. The budget
// link is intentionally not re-validated against the budget's window or
// active flag here; only existence is enforced, by the database itself.
func applyTransactionUpdate(before domain.Transaction, req dto.UpdateTransactionRequest, requestingUserID string, now time.Time) domain.Transaction {
	after := before

	if req.Type != nil {
		after.Type = *req.Type
	}
	if req.Category != nil {
		after.Category = *req.Category
	}
	if req.Amount != nil {
		after.Amount = *req.Amount
	}
	if req.Description != nil {
		after.Description = *req.Description
	}
	if req.Date != nil {
		after.Date = *req.Date
	}
	if req.ClearBudget {
		after.BudgetID = nil
	} else if req.BudgetID != nil {
		after.BudgetID = req.BudgetID
	}
	if req.PaymentMethod != nil {
		after.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		after.Notes = *req.Notes
	}
	if req.Tags != nil {
		after.Tags = req.Tags
	}
	if req.IsRecurring != nil {
		after.IsRecurring = *req.IsRecurring
	}
	if req.RecurringFrequency != nil {
		after.RecurringFrequency = req.RecurringFrequency
	}

	after.LastUpdatedAt = now
	after.LastUpdatedBy = requestingUserID
	return after
}

// UpdateTransaction persists the changes and moves the spent contribution
// from the before-image to the after-image.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	before, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwnerOrAdmin(ctx, before.UserID, requestingUserID); err != nil {
		return nil, err
	}

	after := applyTransactionUpdate(*before, req, requestingUserID, time.Now())

	if err := validateTransactionFields(&after); err != nil {
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, after); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if err := s.budgetSpent.ApplyTransactionUpdated(ctx, before, &after); err != nil {
		s.LogError(ctx, err, "Failed to move spent contribution after update", slog.String("transaction_id", transactionID))
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &after, nil
}

// DeleteTransaction removes the transaction and retracts its contribution.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeOwnerOrAdmin(ctx, txn.UserID, requestingUserID); err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	if err := s.budgetSpent.ApplyTransactionDeleted(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to retract spent contribution after delete", slog.String("transaction_id", transactionID))
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
