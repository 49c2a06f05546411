package mapping

import (
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		UserID:      d.UserID,
		Name:        d.Name,
		Description: d.Description,
		Category:    string(d.Category),
		Amount:      d.Amount,
		Period:      string(d.Period),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsActive:    d.IsActive,
		Spent:       d.Spent,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Category:    domain.Category(m.Category),
		Amount:      m.Amount,
		Period:      domain.BudgetPeriod(m.Period),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsActive:    m.IsActive,
		Spent:       m.Spent,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets to a slice of domain Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
