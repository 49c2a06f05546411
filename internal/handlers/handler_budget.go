package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
	"github.com/fintraq/budget_tracker_app/internal/middleware"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
	spentService  portssvc.BudgetSpentSvcFacade
}

// RegisterBudgetRoutes registers routes related to budgets.
func RegisterBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, spentService portssvc.BudgetSpentSvcFacade) {
	h := &budgetHandler{budgetService: budgetService, spentService: spentService}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/summary", h.getBudgetSummary)
		budgets.GET("/:id", h.getBudget)
		budgets.GET("/:id/details", h.getBudgetDetails)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
		budgets.POST("/:id/reconcile", h.reconcileBudget)
	}
}

// createBudget godoc
// @Summary Create a new budget
// @Description Creates a budget for the logged-in user; spent starts at zero
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.APIResponse{data=dto.BudgetResponse}
// @Failure 400 {object} dto.APIResponse "Invalid category, period, amount or dates"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBudget", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Description Lists the logged-in user's budgets, newest first
// @Tags budgets
// @Produce json
// @Param category query string false "Filter by category"
// @Param period query string false "Filter by period"
// @Param isActive query bool false "Filter by active flag"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]dto.BudgetResponse}
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var filter dto.BudgetListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	var page dto.PaginationParams
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID, filter, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListBudgetResponse(budgets), len(budgets))
}

// getBudget godoc
// @Summary Get a budget by ID
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.APIResponse{data=dto.BudgetResponse}
// @Failure 403 {object} dto.APIResponse "Budget belongs to another user"
// @Failure 404 {object} dto.APIResponse "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToBudgetResponse(budget))
}

// getBudgetDetails godoc
// @Summary Get a budget with its transactions
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.APIResponse{data=dto.BudgetDetailsResponse}
// @Failure 404 {object} dto.APIResponse "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id}/details [get]
func (h *budgetHandler) getBudgetDetails(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationParams
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	details, err := h.budgetService.GetBudgetDetails(c.Request.Context(), c.Param("id"), userID, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, details)
}

// getBudgetSummary godoc
// @Summary Summarize active budgets
// @Description Aggregates the logged-in user's currently active budgets
// @Tags budgets
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BudgetSummaryResponse}
// @Security BearerAuth
// @Router /budgets/summary [get]
func (h *budgetHandler) getBudgetSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.budgetService.GetBudgetSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, summary)
}

// updateBudget godoc
// @Summary Update a budget
// @Description Updates a budget's definition fields; spent is not writable
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.BudgetResponse}
// @Failure 400 {object} dto.APIResponse "Invalid fields"
// @Failure 403 {object} dto.APIResponse "Budget belongs to another user"
// @Failure 404 {object} dto.APIResponse "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBudget", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToBudgetResponse(budget))
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Removes a budget and detaches its transactions
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Budget deleted")
}

// reconcileBudget godoc
// @Summary Rebuild a budget's spent total
// @Description Recomputes spent from the budget's linked expense transactions
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.APIResponse{data=dto.BudgetResponse}
// @Failure 404 {object} dto.APIResponse "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id}/reconcile [post]
func (h *budgetHandler) reconcileBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	budgetID := c.Param("id")

	// Ownership check happens through the regular read path.
	if _, err := h.budgetService.GetBudgetByID(c.Request.Context(), budgetID, userID); err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.spentService.ReconcileBudget(c.Request.Context(), budgetID); err != nil {
		respondError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), budgetID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToBudgetResponse(budget))
}
