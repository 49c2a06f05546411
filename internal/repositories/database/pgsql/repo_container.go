package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		BudgetRepo:      newPgxBudgetRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
