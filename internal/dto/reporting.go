package dto

import "time"

// MonthlyReportParams defines query parameters for the monthly comparison
// report.
type MonthlyReportParams struct {
	Months int    `form:"months,default=6" binding:"omitempty,min=1,max=24"`
	UserID string `form:"userID"` // Admin-only override
}

// CategoryReportRequest defines the date range for the category spending
// report. Omitted ends leave the window unbounded on that side.
type CategoryReportRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// DashboardParams defines query parameters for the dashboard summary.
type DashboardParams struct {
	UserID string `form:"userID"` // Admin-only override
}

// ReconcileResponse reports the outcome of an on-demand reconciliation.
type ReconcileResponse struct {
	BudgetsChanged int64 `json:"budgetsChanged"`
}
