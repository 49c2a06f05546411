package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/core/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockBudgetRepo    *MockBudgetRepository
	mockUserRepo      *MockUserRepository
	service           *services.ReportingService
	ctx               context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockBudgetRepo, suite.mockUserRepo)
	suite.ctx = context.Background()
}

func (suite *ReportingServiceTestSuite) expectAdmin(userID string) {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleAdmin}, nil).Once()
}

func (suite *ReportingServiceTestSuite) expectEmployee(userID string) {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, userID).
		Return(&domain.User{UserID: userID, Role: domain.RoleEmployee}, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_HealthBanding() {
	budgets := []domain.Budget{
		{BudgetID: "b-good", Name: "Food", Amount: decimal.NewFromInt(1000), Spent: decimal.NewFromInt(200)},
		{BudgetID: "b-warn-low", Name: "Transport", Amount: decimal.NewFromInt(100), Spent: decimal.NewFromInt(80)},
		{BudgetID: "b-warn-high", Name: "Housing", Amount: decimal.NewFromInt(100), Spent: decimal.NewFromInt(100)},
		{BudgetID: "b-over", Name: "Fun", Amount: decimal.NewFromInt(100), Spent: decimal.NewFromInt(101)},
	}
	suite.mockReportingRepo.On("GetPeriodTotals", suite.ctx, "user-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(&domain.PeriodTotals{Income: decimal.NewFromInt(3000), Expense: decimal.NewFromInt(481), TransactionCount: 7}, nil).Once()
	suite.mockReportingRepo.On("GetExpenseTotalsByCategory", suite.ctx, "user-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.CategoryTotal{}, nil).Once()
	suite.mockBudgetRepo.On("FindActiveBudgetsAt", suite.ctx, "user-1", mock.AnythingOfType("time.Time")).
		Return(budgets, nil).Once()
	suite.mockReportingRepo.On("FindRecentTransactions", suite.ctx, "user-1", 5).
		Return([]domain.Transaction{}, nil).Once()

	summary, err := suite.service.DashboardSummary(suite.ctx, "user-1", "")

	suite.Require().NoError(err)
	suite.Equal(4, summary.ActiveBudgetCount)
	suite.True(summary.MonthBalance.Equal(decimal.NewFromInt(2519)))
	suite.Require().Len(summary.BudgetHealth, 4)
	suite.Equal(domain.HealthGood, summary.BudgetHealth[0].Status)
	suite.Equal(domain.HealthWarning, summary.BudgetHealth[1].Status) // exactly 80%
	suite.Equal(domain.HealthWarning, summary.BudgetHealth[2].Status) // exactly 100%
	suite.Equal(domain.HealthOver, summary.BudgetHealth[3].Status)
	suite.True(summary.BudgetHealth[0].Remaining.Equal(decimal.NewFromInt(800)))
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_NonAdminCannotTargetOthers() {
	suite.expectEmployee("user-1")

	_, err := suite.service.DashboardSummary(suite.ctx, "user-1", "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetPeriodTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_AdminMayTargetOthers() {
	suite.expectAdmin("admin-1")
	suite.mockReportingRepo.On("GetPeriodTotals", suite.ctx, "user-2", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(&domain.PeriodTotals{}, nil).Once()
	suite.mockReportingRepo.On("GetExpenseTotalsByCategory", suite.ctx, "user-2", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.CategoryTotal{}, nil).Once()
	suite.mockBudgetRepo.On("FindActiveBudgetsAt", suite.ctx, "user-2", mock.AnythingOfType("time.Time")).
		Return([]domain.Budget{}, nil).Once()
	suite.mockReportingRepo.On("FindRecentTransactions", suite.ctx, "user-2", 5).
		Return([]domain.Transaction{}, nil).Once()

	summary, err := suite.service.DashboardSummary(suite.ctx, "admin-1", "user-2")

	suite.Require().NoError(err)
	suite.NotNil(summary)
}

func (suite *ReportingServiceTestSuite) TestMonthlyReport_ZeroFillsMissingMonths() {
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	middle := thisMonth.AddDate(0, -1, 0)

	rows := []domain.MonthlyTotals{
		{
			Year:             middle.Year(),
			Month:            middle.Month(),
			Income:           decimal.NewFromInt(2000),
			Expense:          decimal.NewFromInt(1500),
			Balance:          decimal.NewFromInt(500),
			TransactionCount: 9,
		},
	}
	suite.mockReportingRepo.On("GetMonthlyTotals", suite.ctx, "user-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(rows, nil).Once()

	report, err := suite.service.MonthlyReport(suite.ctx, "user-1", "", 3)

	suite.Require().NoError(err)
	suite.Require().Len(report, 3)

	oldest := thisMonth.AddDate(0, -2, 0)
	suite.Equal(oldest.Month(), report[0].Month)
	suite.True(report[0].Income.IsZero())
	suite.True(report[0].Expense.IsZero())

	suite.Equal(middle.Month(), report[1].Month)
	suite.True(report[1].Income.Equal(decimal.NewFromInt(2000)))
	suite.Equal(9, report[1].TransactionCount)

	suite.Equal(thisMonth.Month(), report[2].Month)
	suite.True(report[2].Income.IsZero())

	for i, entry := range report {
		cursor := thisMonth.AddDate(0, i-2, 0)
		suite.Equal(fmt.Sprintf("%s %d", cursor.Month(), cursor.Year()), entry.Label)
	}
}

func (suite *ReportingServiceTestSuite) TestMonthlyReport_RejectsZeroMonths() {
	_, err := suite.service.MonthlyReport(suite.ctx, "user-1", "", 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestCategorySpendingReport_Percentages() {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	totals := []domain.CategoryTotal{
		{Category: domain.CategoryFood, Total: decimal.NewFromInt(600), Count: 12},
		{Category: domain.CategoryTransport, Total: decimal.NewFromInt(300), Count: 4},
		{Category: domain.CategoryOther, Total: decimal.NewFromInt(100), Count: 1},
	}
	suite.mockReportingRepo.On("GetExpenseTotalsByCategory", suite.ctx, "user-1", from, to).
		Return(totals, nil).Once()

	shares, err := suite.service.CategorySpendingReport(suite.ctx, "user-1", "", dto.CategoryReportRequest{From: &from, To: &to})

	suite.Require().NoError(err)
	suite.Require().Len(shares, 3)
	suite.True(shares[0].Percentage.Equal(decimal.NewFromInt(60)))
	suite.True(shares[1].Percentage.Equal(decimal.NewFromInt(30)))
	suite.True(shares[2].Percentage.Equal(decimal.NewFromInt(10)))
}

func (suite *ReportingServiceTestSuite) TestCategorySpendingReport_ZeroSpendYieldsZeroShares() {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	totals := []domain.CategoryTotal{
		{Category: domain.CategoryFood, Total: decimal.Zero, Count: 0},
	}
	suite.mockReportingRepo.On("GetExpenseTotalsByCategory", suite.ctx, "user-1", from, to).
		Return(totals, nil).Once()

	shares, err := suite.service.CategorySpendingReport(suite.ctx, "user-1", "", dto.CategoryReportRequest{From: &from, To: &to})

	suite.Require().NoError(err)
	suite.Require().Len(shares, 1)
	suite.True(shares[0].Percentage.IsZero())
}

func (suite *ReportingServiceTestSuite) TestCategorySpendingReport_DefaultWindowIsUnbounded() {
	old := time.Date(1999, 3, 7, 0, 0, 0, 0, time.UTC)
	suite.mockReportingRepo.On("GetExpenseTotalsByCategory", suite.ctx, "user-1",
		mock.MatchedBy(func(from time.Time) bool { return from.Before(old) }),
		mock.MatchedBy(func(to time.Time) bool { return to.After(time.Now()) }),
	).Return([]domain.CategoryTotal{}, nil).Once()

	shares, err := suite.service.CategorySpendingReport(suite.ctx, "user-1", "", dto.CategoryReportRequest{})

	suite.Require().NoError(err)
	suite.Empty(shares)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCategorySpendingReport_InvalidRange() {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.CategorySpendingReport(suite.ctx, "user-1", "", dto.CategoryReportRequest{From: &from, To: &to})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestAdminOverview_EmployeeForbidden() {
	suite.expectEmployee("user-1")

	_, err := suite.service.AdminOverview(suite.ctx, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "CountUsers", mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestAdminOverview_AssemblesAllSections() {
	suite.expectAdmin("admin-1")
	suite.mockReportingRepo.On("CountUsers", suite.ctx).
		Return(&domain.UserCounts{Total: 10, Active: 8, Admins: 2, Employees: 8}, nil).Once()
	suite.mockReportingRepo.On("CountBudgets", suite.ctx).
		Return(&domain.BudgetCounts{Total: 25, Active: 19}, nil).Once()
	suite.mockReportingRepo.On("GetGlobalTransactionTotals", suite.ctx).
		Return(&domain.GlobalTotals{TransactionCount: 640, Income: decimal.NewFromInt(90000), Expense: decimal.NewFromInt(70000), Balance: decimal.NewFromInt(20000)}, nil).Once()
	suite.mockReportingRepo.On("FindTopUsersByTransactionCount", suite.ctx, 10).
		Return([]domain.UserActivity{{UserID: "user-1", TransactionCount: 120}}, nil).Once()

	overview, err := suite.service.AdminOverview(suite.ctx, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(int64(10), overview.Users.Total)
	suite.Equal(int64(19), overview.Budgets.Active)
	suite.True(overview.Transactions.Balance.Equal(decimal.NewFromInt(20000)))
	suite.Require().Len(overview.TopUsers, 1)
	suite.Equal(int64(120), overview.TopUsers[0].TransactionCount)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
