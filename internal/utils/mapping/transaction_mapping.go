package mapping

import (
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var freq *string
	if d.RecurringFrequency != nil {
		f := string(*d.RecurringFrequency)
		freq = &f
	}
	return models.Transaction{
		TransactionID:      d.TransactionID,
		UserID:             d.UserID,
		BudgetID:           d.BudgetID,
		Type:               string(d.Type),
		Category:           string(d.Category),
		Amount:             d.Amount,
		Description:        d.Description,
		Date:               d.Date,
		PaymentMethod:      string(d.PaymentMethod),
		Notes:              d.Notes,
		Tags:               d.Tags,
		IsRecurring:        d.IsRecurring,
		RecurringFrequency: freq,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	var freq *domain.RecurringFrequency
	if m.RecurringFrequency != nil {
		f := domain.RecurringFrequency(*m.RecurringFrequency)
		freq = &f
	}
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		UserID:             m.UserID,
		BudgetID:           m.BudgetID,
		Type:               domain.TransactionType(m.Type),
		Category:           domain.Category(m.Category),
		Amount:             m.Amount,
		Description:        m.Description,
		Date:               m.Date,
		PaymentMethod:      domain.PaymentMethod(m.PaymentMethod),
		Notes:              m.Notes,
		Tags:               m.Tags,
		IsRecurring:        m.IsRecurring,
		RecurringFrequency: freq,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
