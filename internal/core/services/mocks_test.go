package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockBudgetRepository is a mock type for the BudgetRepositoryFacade interface
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetsByUser(ctx context.Context, userID string, filter portsrepo.BudgetListFilter, limit int, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindActiveBudgetsAt(ctx context.Context, userID string, at time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) AdjustSpent(ctx context.Context, budgetID string, delta decimal.Decimal) error {
	args := m.Called(ctx, budgetID, delta)
	return args.Error(0)
}

func (m *MockBudgetRepository) RecomputeSpent(ctx context.Context, budgetID string) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBudgetRepository) RecomputeAllSpent(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionListFilter, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByBudget(ctx context.Context, budgetID string, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, budgetID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepositoryFacade interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetPeriodTotals(ctx context.Context, userID string, from, to time.Time) (*domain.PeriodTotals, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodTotals), args.Error(1)
}

func (m *MockReportingRepository) GetExpenseTotalsByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) GetExpenseTotalsByPaymentMethod(ctx context.Context, userID string, from, to time.Time) ([]domain.PaymentMethodTotal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethodTotal), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyTotals, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotals), args.Error(1)
}

func (m *MockReportingRepository) FindRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockReportingRepository) CountUsers(ctx context.Context) (*domain.UserCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCounts), args.Error(1)
}

func (m *MockReportingRepository) CountBudgets(ctx context.Context) (*domain.BudgetCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetCounts), args.Error(1)
}

func (m *MockReportingRepository) GetGlobalTransactionTotals(ctx context.Context) (*domain.GlobalTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalTotals), args.Error(1)
}

func (m *MockReportingRepository) FindTopUsersByTransactionCount(ctx context.Context, limit int) ([]domain.UserActivity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserActivity), args.Error(1)
}

// MockBudgetSpentService is a mock type for the BudgetSpentSvcFacade interface
type MockBudgetSpentService struct {
	mock.Mock
}

func (m *MockBudgetSpentService) ApplyTransactionCreated(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockBudgetSpentService) ApplyTransactionUpdated(ctx context.Context, before, after *domain.Transaction) error {
	args := m.Called(ctx, before, after)
	return args.Error(0)
}

func (m *MockBudgetSpentService) ApplyTransactionDeleted(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockBudgetSpentService) ReconcileBudget(ctx context.Context, budgetID string) (decimal.Decimal, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBudgetSpentService) ReconcileAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
