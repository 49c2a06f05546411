package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
	"github.com/fintraq/budget_tracker_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{txnService: txnService}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/stats", h.getTransactionStats)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense; a linked budget must be owned, active and cover the date
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.APIResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.APIResponse "Invalid fields, inactive budget or date outside budget window"
// @Failure 403 {object} dto.APIResponse "Budget belongs to another user"
// @Failure 404 {object} dto.APIResponse "Linked budget not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the logged-in user's transactions, newest first by date
// @Tags transactions
// @Produce json
// @Param type query string false "Filter by type (income or expense)"
// @Param category query string false "Filter by category"
// @Param budgetID query string false "Filter by linked budget"
// @Param from query string false "Start date (inclusive), YYYY-MM-DD"
// @Param to query string false "End date (exclusive), YYYY-MM-DD"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]dto.TransactionResponse}
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var filter dto.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	var page dto.PaginationParams
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	txns, err := h.txnService.ListTransactions(c.Request.Context(), userID, filter, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, dto.ToListTransactionResponse(txns), len(txns))
}

// getTransactionStats godoc
// @Summary Aggregate transactions over a date range
// @Description Sums income, expense and per-category spend; defaults to the current month
// @Tags transactions
// @Produce json
// @Param from query string false "Start date (inclusive), YYYY-MM-DD"
// @Param to query string false "End date (exclusive), YYYY-MM-DD"
// @Success 200 {object} dto.APIResponse{data=dto.TransactionStatsResponse}
// @Security BearerAuth
// @Router /transactions/stats [get]
func (h *transactionHandler) getTransactionStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TransactionStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	stats, err := h.txnService.GetTransactionStats(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, stats)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.APIResponse{data=dto.TransactionResponse}
// @Failure 403 {object} dto.APIResponse "Transaction belongs to another user"
// @Failure 404 {object} dto.APIResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates a transaction and moves its budget contribution accordingly
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.TransactionResponse}
// @Failure 400 {object} dto.APIResponse "Invalid fields"
// @Failure 404 {object} dto.APIResponse "Transaction or new budget not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTransaction", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction and retracts its budget contribution
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.txnService.DeleteTransaction(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Transaction deleted")
}
