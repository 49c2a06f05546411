package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// RegisterCustomValidators hooks struct-level checks into gin's binding
// engine so obviously malformed requests fail before reaching a service.
// The services re-check the same invariants; binding just fails faster.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterStructValidation(createBudgetStructLevel, dto.CreateBudgetRequest{})
	v.RegisterStructValidation(createTransactionStructLevel, dto.CreateTransactionRequest{})
}

func createBudgetStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.CreateBudgetRequest)
	if !req.EndDate.After(req.StartDate) {
		sl.ReportError(req.EndDate, "endDate", "EndDate", "gtfield", "StartDate")
	}
	if req.Amount.IsNegative() {
		sl.ReportError(req.Amount, "amount", "Amount", "min", "0")
	}
}

func createTransactionStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.CreateTransactionRequest)
	if !req.Amount.IsPositive() {
		sl.ReportError(req.Amount, "amount", "Amount", "gt", "0")
	}
	if req.IsRecurring && req.RecurringFrequency == nil {
		sl.ReportError(req.RecurringFrequency, "recurringFrequency", "RecurringFrequency", "required_with", "IsRecurring")
	}
}
