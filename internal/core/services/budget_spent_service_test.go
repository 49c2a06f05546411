package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/core/services"
)

type BudgetSpentServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	service        *services.BudgetSpentService
	ctx            context.Context
}

func (suite *BudgetSpentServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetSpentService(suite.mockBudgetRepo)
	suite.ctx = context.Background()
}

func decimalEq(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func expenseTxn(budgetID string, amount int64) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		BudgetID:      &budgetID,
		Type:          domain.Expense,
		Category:      domain.CategoryFood,
		Amount:        decimal.NewFromInt(amount),
	}
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionCreated_LinkedExpense() {
	txn := expenseTxn("budget-1", 100)
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-1", decimalEq(decimal.NewFromInt(100))).Return(nil).Once()

	err := suite.service.ApplyTransactionCreated(suite.ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionCreated_IncomeDoesNotTouchBudget() {
	budgetID := "budget-1"
	txn := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		BudgetID:      &budgetID,
		Type:          domain.Income,
		Category:      domain.CategorySalary,
		Amount:        decimal.NewFromInt(500),
	}

	err := suite.service.ApplyTransactionCreated(suite.ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "AdjustSpent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionCreated_UnlinkedExpenseIsNoop() {
	txn := &domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "user-1",
		Type:          domain.Expense,
		Category:      domain.CategoryFood,
		Amount:        decimal.NewFromInt(40),
	}

	err := suite.service.ApplyTransactionCreated(suite.ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "AdjustSpent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionCreated_MissingBudgetIsSwallowed() {
	txn := expenseTxn("budget-gone", 25)
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-gone", decimalEq(decimal.NewFromInt(25))).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.ApplyTransactionCreated(suite.ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionCreated_RepoErrorPropagates() {
	txn := expenseTxn("budget-1", 25)
	dbErr := errors.New("connection reset")
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-1", decimalEq(decimal.NewFromInt(25))).
		Return(dbErr).Once()

	err := suite.service.ApplyTransactionCreated(suite.ctx, txn)

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionUpdated_SameBudgetNetDelta() {
	before := expenseTxn("budget-1", 100)
	after := expenseTxn("budget-1", 150)
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-1", decimalEq(decimal.NewFromInt(50))).Return(nil).Once()

	err := suite.service.ApplyTransactionUpdated(suite.ctx, before, after)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNumberOfCalls(suite.T(), "AdjustSpent", 1)
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionUpdated_ZeroNetDeltaSkipsRepo() {
	before := expenseTxn("budget-1", 100)
	after := expenseTxn("budget-1", 100)
	after.Description = "same amount, new description"

	err := suite.service.ApplyTransactionUpdated(suite.ctx, before, after)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "AdjustSpent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionUpdated_BudgetReassignment() {
	before := expenseTxn("budget-old", 80)
	after := expenseTxn("budget-new", 80)
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-old", decimalEq(decimal.NewFromInt(-80))).Return(nil).Once()
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-new", decimalEq(decimal.NewFromInt(80))).Return(nil).Once()

	err := suite.service.ApplyTransactionUpdated(suite.ctx, before, after)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionUpdated_ExpenseBecomesIncome() {
	before := expenseTxn("budget-1", 60)
	after := expenseTxn("budget-1", 60)
	after.Type = domain.Income
	after.Category = domain.CategoryOther
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-1", decimalEq(decimal.NewFromInt(-60))).Return(nil).Once()

	err := suite.service.ApplyTransactionUpdated(suite.ctx, before, after)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNumberOfCalls(suite.T(), "AdjustSpent", 1)
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionUpdated_BudgetLinkAdded() {
	before := expenseTxn("budget-1", 60)
	before.BudgetID = nil
	after := expenseTxn("budget-1", 60)
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-1", decimalEq(decimal.NewFromInt(60))).Return(nil).Once()

	err := suite.service.ApplyTransactionUpdated(suite.ctx, before, after)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNumberOfCalls(suite.T(), "AdjustSpent", 1)
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionUpdated_RetractOnDeletedBudgetStillAppliesNew() {
	before := expenseTxn("budget-gone", 30)
	after := expenseTxn("budget-new", 45)
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-gone", decimalEq(decimal.NewFromInt(-30))).
		Return(apperrors.ErrNotFound).Once()
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-new", decimalEq(decimal.NewFromInt(45))).
		Return(nil).Once()

	err := suite.service.ApplyTransactionUpdated(suite.ctx, before, after)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionDeleted_RetractsContribution() {
	txn := expenseTxn("budget-1", 75)
	suite.mockBudgetRepo.On("AdjustSpent", suite.ctx, "budget-1", decimalEq(decimal.NewFromInt(-75))).Return(nil).Once()

	err := suite.service.ApplyTransactionDeleted(suite.ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetSpentServiceTestSuite) TestApplyTransactionDeleted_IncomeIsNoop() {
	txn := expenseTxn("budget-1", 75)
	txn.Type = domain.Income

	err := suite.service.ApplyTransactionDeleted(suite.ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "AdjustSpent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetSpentServiceTestSuite) TestReconcileBudget_ReturnsRecomputedValue() {
	want := decimal.NewFromInt(320)
	suite.mockBudgetRepo.On("RecomputeSpent", suite.ctx, "budget-1").Return(want, nil).Once()

	spent, err := suite.service.ReconcileBudget(suite.ctx, "budget-1")

	suite.Require().NoError(err)
	suite.True(spent.Equal(want))
}

func (suite *BudgetSpentServiceTestSuite) TestReconcileBudget_NotFound() {
	suite.mockBudgetRepo.On("RecomputeSpent", suite.ctx, "budget-gone").
		Return(decimal.Zero, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReconcileBudget(suite.ctx, "budget-gone")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BudgetSpentServiceTestSuite) TestReconcileAll_ReturnsChangedCount() {
	suite.mockBudgetRepo.On("RecomputeAllSpent", suite.ctx).Return(int64(3), nil).Once()

	changed, err := suite.service.ReconcileAll(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), changed)
}

func TestBudgetSpentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetSpentServiceTestSuite))
}
