package services

import (
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The spent tracker comes first since the transaction service depends on it.
	container.BudgetSpent = NewBudgetSpentService(repos.BudgetRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.TransactionRepo, repos.UserRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.BudgetRepo,
		repos.ReportingRepo,
		repos.UserRepo,
		container.BudgetSpent,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.BudgetRepo, repos.UserRepo)

	return container
}
