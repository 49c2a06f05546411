package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
	"github.com/fintraq/budget_tracker_app/internal/handlers"
	"github.com/fintraq/budget_tracker_app/internal/middleware"
)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) GetBudgetByID(ctx context.Context, budgetID string, requestingUserID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) ListBudgets(ctx context.Context, requestingUserID string, filter dto.BudgetListFilter, limit, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, requestingUserID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}
func (m *MockBudgetService) GetBudgetDetails(ctx context.Context, budgetID string, requestingUserID string, limit, offset int) (*dto.BudgetDetailsResponse, error) {
	args := m.Called(ctx, budgetID, requestingUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BudgetDetailsResponse), args.Error(1)
}
func (m *MockBudgetService) GetBudgetSummary(ctx context.Context, requestingUserID string) (*dto.BudgetSummaryResponse, error) {
	args := m.Called(ctx, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BudgetSummaryResponse), args.Error(1)
}
func (m *MockBudgetService) CreateBudget(ctx context.Context, requestingUserID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, requestingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) DeleteBudget(ctx context.Context, budgetID string, requestingUserID string) error {
	args := m.Called(ctx, budgetID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock BudgetSpentService ---
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

// Ensure mock implements the interface
var _ portssvc.BudgetSpentSvcFacade = (*MockBudgetSpentService)(nil)

// --- Test Suite ---
type BudgetHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockBudgetSvc    *MockBudgetService
	mockSpentService *MockBudgetSpentService
	jwtSecret        string
}

func (suite *BudgetHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockBudgetSvc = new(MockBudgetService)
	suite.mockSpentService = new(MockBudgetSpentService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBudgetRoutes(v1, suite.mockBudgetSvc, suite.mockSpentService)
}

func (suite *BudgetHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bta-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BudgetHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *BudgetHandlerTestSuite) TestListBudgets_Success() {
	userID := uuid.NewString()
	budgets := []domain.Budget{
		{BudgetID: uuid.NewString(), UserID: userID, Name: "Groceries", Category: domain.CategoryFood,
			Amount: decimal.NewFromInt(1000), Spent: decimal.NewFromInt(250), Period: domain.PeriodMonthly, IsActive: true},
		{BudgetID: uuid.NewString(), UserID: userID, Name: "Transport", Category: domain.CategoryTransport,
			Amount: decimal.NewFromInt(300), Spent: decimal.Zero, Period: domain.PeriodMonthly, IsActive: true},
	}
	suite.mockBudgetSvc.On("ListBudgets",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.AnythingOfType("dto.BudgetListFilter"),
		20, 0,
	).Return(budgets, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/budgets", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var envelope struct {
		Success bool                 `json:"success"`
		Data    []dto.BudgetResponse `json:"data"`
		Count   *int                 `json:"count"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.Require().NotNil(envelope.Count)
	suite.Equal(2, *envelope.Count)
	suite.Require().Len(envelope.Data, 2)
	suite.Equal("Groceries", envelope.Data[0].Name)
	suite.True(envelope.Data[0].Remaining.Equal(decimal.NewFromInt(750)))
	suite.mockBudgetSvc.AssertExpectations(suite.T())
}

func (suite *BudgetHandlerTestSuite) TestGetBudget_NotFound() {
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	suite.mockBudgetSvc.On("GetBudgetByID",
		mock.AnythingOfType("*context.valueCtx"), budgetID, userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/budgets/"+budgetID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)

	var envelope dto.APIResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.False(envelope.Success)
	suite.NotEmpty(envelope.Message)
}

func (suite *BudgetHandlerTestSuite) TestCreateBudget_Success() {
	userID := uuid.NewString()
	req := dto.CreateBudgetRequest{
		Name:      "Groceries",
		Category:  domain.CategoryFood,
		Amount:    decimal.NewFromInt(1000),
		Period:    domain.PeriodMonthly,
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	created := &domain.Budget{
		BudgetID: uuid.NewString(), UserID: userID, Name: req.Name, Category: req.Category,
		Amount: req.Amount, Period: req.Period, StartDate: req.StartDate, EndDate: req.EndDate,
		IsActive: true, Spent: decimal.Zero,
	}
	suite.mockBudgetSvc.On("CreateBudget",
		mock.AnythingOfType("*context.valueCtx"), userID,
		mock.MatchedBy(func(r dto.CreateBudgetRequest) bool {
			return r.Name == req.Name && r.Amount.Equal(req.Amount)
		}),
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/budgets", userID, req)

	suite.Equal(http.StatusCreated, w.Code)

	var envelope struct {
		Success bool               `json:"success"`
		Data    dto.BudgetResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.Equal(created.BudgetID, envelope.Data.BudgetID)
	suite.True(envelope.Data.Spent.IsZero())
}

func (suite *BudgetHandlerTestSuite) TestCreateBudget_InvalidPeriodMapsTo400() {
	userID := uuid.NewString()
	req := dto.CreateBudgetRequest{
		Name:      "Groceries",
		Category:  domain.CategoryFood,
		Amount:    decimal.NewFromInt(1000),
		Period:    domain.PeriodMonthly,
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.mockBudgetSvc.On("CreateBudget",
		mock.AnythingOfType("*context.valueCtx"), userID, mock.AnythingOfType("dto.CreateBudgetRequest"),
	).Return(nil, apperrors.ErrInvalidPeriod).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/budgets", userID, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *BudgetHandlerTestSuite) TestReconcileBudget_RereadsAfterRecompute() {
	userID := uuid.NewString()
	budgetID := uuid.NewString()

	stale := &domain.Budget{BudgetID: budgetID, UserID: userID, Amount: decimal.NewFromInt(1000), Spent: decimal.NewFromInt(100)}
	repaired := &domain.Budget{BudgetID: budgetID, UserID: userID, Amount: decimal.NewFromInt(1000), Spent: decimal.NewFromInt(320)}

	suite.mockBudgetSvc.On("GetBudgetByID",
		mock.AnythingOfType("*context.valueCtx"), budgetID, userID,
	).Return(stale, nil).Once()
	suite.mockSpentService.On("ReconcileBudget",
		mock.AnythingOfType("*context.valueCtx"), budgetID,
	).Return(decimal.NewFromInt(320), nil).Once()
	suite.mockBudgetSvc.On("GetBudgetByID",
		mock.AnythingOfType("*context.valueCtx"), budgetID, userID,
	).Return(repaired, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/budgets/"+budgetID+"/reconcile", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var envelope struct {
		Success bool               `json:"success"`
		Data    dto.BudgetResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.True(envelope.Data.Spent.Equal(decimal.NewFromInt(320)))
	suite.mockSpentService.AssertExpectations(suite.T())
}

func (suite *BudgetHandlerTestSuite) TestReconcileBudget_StrangerNeverReachesRecompute() {
	userID := uuid.NewString()
	budgetID := uuid.NewString()

	suite.mockBudgetSvc.On("GetBudgetByID",
		mock.AnythingOfType("*context.valueCtx"), budgetID, userID,
	).Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/budgets/"+budgetID+"/reconcile", userID, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockSpentService.AssertNotCalled(suite.T(), "ReconcileBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, err := http.NewRequest(http.MethodGet, "/api/v1/budgets", nil)
	suite.Require().NoError(err)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBudgetSvc.AssertNotCalled(suite.T(), "ListBudgets", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestBudgetHandler(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}
