package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// reportingHandler handles the read-only report endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	spentService     portssvc.BudgetSpentSvcFacade
	userService      portssvc.UserSvcFacade
}

// registerReportingRoutes registers the report endpoints.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, spentService portssvc.BudgetSpentSvcFacade, userService portssvc.UserSvcFacade) {
	h := &reportingHandler{reportingService: reportingService, spentService: spentService, userService: userService}

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/monthly", h.getMonthlyReport)
		reports.GET("/categories", h.getCategoryReport)
	}

	admin := rg.Group("/admin")
	{
		admin.GET("/overview", h.getAdminOverview)
		admin.POST("/reconcile", h.reconcileAll)
	}
}

// getDashboard godoc
// @Summary Current-month dashboard
// @Description Totals, budget health and recent transactions for the current month
// @Tags reports
// @Produce json
// @Param userID query string false "Target user (admin only)"
// @Success 200 {object} dto.APIResponse{data=domain.DashboardSummary}
// @Failure 403 {object} dto.APIResponse "Targeting another user without admin role"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), userID, params.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, summary)
}

// getMonthlyReport godoc
// @Summary Monthly income and expense comparison
// @Description Last N calendar months, oldest first, zero-filled for silent months
// @Tags reports
// @Produce json
// @Param months query int false "Number of months" default(6)
// @Param userID query string false "Target user (admin only)"
// @Success 200 {object} dto.APIResponse{data=[]domain.MonthlyTotals}
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlyReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	report, err := h.reportingService.MonthlyReport(c.Request.Context(), userID, params.UserID, params.Months)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, report, len(report))
}

// getCategoryReport godoc
// @Summary Category spending breakdown
// @Description Expense totals per category with their share of overall spend
// @Tags reports
// @Produce json
// @Param from query string false "Start date (inclusive), YYYY-MM-DD"
// @Param to query string false "End date (exclusive), YYYY-MM-DD"
// @Param userID query string false "Target user (admin only)"
// @Success 200 {object} dto.APIResponse{data=[]domain.CategoryShare}
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) getCategoryReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CategoryReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	targetUserID := c.Query("userID")

	report, err := h.reportingService.CategorySpendingReport(c.Request.Context(), userID, targetUserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, report, len(report))
}

// getAdminOverview godoc
// @Summary System-wide overview
// @Description User, budget and transaction rollups across all accounts
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=domain.AdminOverview}
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Security BearerAuth
// @Router /admin/overview [get]
func (h *reportingHandler) getAdminOverview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	overview, err := h.reportingService.AdminOverview(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, overview)
}

// reconcileAll godoc
// @Summary Rebuild every budget's spent total
// @Description Admin-only on-demand reconciliation pass
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ReconcileResponse}
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Security BearerAuth
// @Router /admin/reconcile [post]
func (h *reportingHandler) reconcileAll(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	requester, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !requester.IsAdmin() {
		respondError(c, apperrors.ErrForbidden)
		return
	}

	changed, err := h.spentService.ReconcileAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ReconcileResponse{BudgetsChanged: changed})
}
