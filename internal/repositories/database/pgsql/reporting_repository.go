package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	"github.com/fintraq/budget_tracker_app/internal/models"
	"github.com/fintraq/budget_tracker_app/internal/utils/mapping"
)

// reportingRepository implements the ReportingRepositoryFacade interface.
// Every method pushes the aggregation into SQL; nothing sums rows in Go.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetPeriodTotals sums income and expense amounts for a user within [from, to).
func (r *reportingRepository) GetPeriodTotals(ctx context.Context, userID string, from, to time.Time) (*domain.PeriodTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense,
			COUNT(*) AS txn_count
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3;
	`
	var totals domain.PeriodTotals
	err := r.Pool.QueryRow(ctx, query, userID, from, to).Scan(&totals.Income, &totals.Expense, &totals.TransactionCount)
	if err != nil {
		return nil, fmt.Errorf("error querying period totals for user %s: %w", userID, err)
	}
	return &totals, nil
}

// GetExpenseTotalsByCategory sums a user's expenses per category within
// [from, to), largest total first.
func (r *reportingRepository) GetExpenseTotalsByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount) AS total, COUNT(*) AS txn_count
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND date >= $2 AND date < $3
		GROUP BY category
		ORDER BY total DESC, category ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals for user %s: %w", userID, err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		var category string
		if err := rows.Scan(&category, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}
		row.Category = domain.Category(category)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}

	return result, nil
}

// GetExpenseTotalsByPaymentMethod sums a user's expenses per payment method
// within [from, to), largest total first.
func (r *reportingRepository) GetExpenseTotalsByPaymentMethod(ctx context.Context, userID string, from, to time.Time) ([]domain.PaymentMethodTotal, error) {
	query := `
		SELECT payment_method, SUM(amount) AS total, COUNT(*) AS txn_count
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND date >= $2 AND date < $3
		GROUP BY payment_method
		ORDER BY total DESC, payment_method ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying payment method totals for user %s: %w", userID, err)
	}
	defer rows.Close()

	result := []domain.PaymentMethodTotal{}
	for rows.Next() {
		var row domain.PaymentMethodTotal
		var method string
		if err := rows.Scan(&method, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning payment method total row: %w", err)
		}
		row.PaymentMethod = domain.PaymentMethod(method)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment method total rows: %w", err)
	}

	return result, nil
}

// GetMonthlyTotals sums income and expense per calendar month for a user
// within [from, to). Months with no transactions produce no row.
func (r *reportingRepository) GetMonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.MonthlyTotals, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM date)::int AS year,
			EXTRACT(MONTH FROM date)::int AS month,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense,
			COUNT(*) AS txn_count
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY year, month
		ORDER BY year ASC, month ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals for user %s: %w", userID, err)
	}
	defer rows.Close()

	result := []domain.MonthlyTotals{}
	for rows.Next() {
		var row domain.MonthlyTotals
		var month int
		if err := rows.Scan(&row.Year, &month, &row.Income, &row.Expense, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("error scanning monthly totals row: %w", err)
		}
		row.Month = time.Month(month)
		row.Balance = row.Income.Sub(row.Expense)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals rows: %w", err)
	}

	return result, nil
}

// FindRecentTransactions retrieves a user's most recent transactions by date.
func (r *reportingRepository) FindRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning recent transaction row: %w", err)
		}
		txns = append(txns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(txns), nil
}

// CountUsers returns total and per-role user counts.
func (r *reportingRepository) CountUsers(ctx context.Context) (*domain.UserCounts, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active,
			COUNT(*) FILTER (WHERE role = 'admin') AS admins,
			COUNT(*) FILTER (WHERE role = 'employee') AS employees
		FROM users;
	`
	var counts domain.UserCounts
	err := r.Pool.QueryRow(ctx, query).Scan(&counts.Total, &counts.Active, &counts.Admins, &counts.Employees)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	return &counts, nil
}

// CountBudgets returns total and active budget counts.
func (r *reportingRepository) CountBudgets(ctx context.Context) (*domain.BudgetCounts, error) {
	query := `
		SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE is_active) AS active
		FROM budgets;
	`
	var counts domain.BudgetCounts
	err := r.Pool.QueryRow(ctx, query).Scan(&counts.Total, &counts.Active)
	if err != nil {
		return nil, fmt.Errorf("error counting budgets: %w", err)
	}
	return &counts, nil
}

// GetGlobalTransactionTotals sums income and expense across all users.
func (r *reportingRepository) GetGlobalTransactionTotals(ctx context.Context) (*domain.GlobalTotals, error) {
	query := `
		SELECT
			COUNT(*) AS txn_count,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
		FROM transactions;
	`
	var totals domain.GlobalTotals
	err := r.Pool.QueryRow(ctx, query).Scan(&totals.TransactionCount, &totals.Income, &totals.Expense)
	if err != nil {
		return nil, fmt.Errorf("error querying global transaction totals: %w", err)
	}
	totals.Balance = totals.Income.Sub(totals.Expense)
	return &totals, nil
}

// FindTopUsersByTransactionCount lists the most active users by transaction
// count, busiest first.
func (r *reportingRepository) FindTopUsersByTransactionCount(ctx context.Context, limit int) ([]domain.UserActivity, error) {
	query := `
		SELECT u.user_id, u.name, u.email, u.role,
		       COUNT(t.transaction_id) AS txn_count,
		       MAX(t.date) AS last_txn_at
		FROM users u
		LEFT JOIN transactions t ON t.user_id = u.user_id
		GROUP BY u.user_id, u.name, u.email, u.role
		ORDER BY txn_count DESC, u.created_at ASC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top users: %w", err)
	}
	defer rows.Close()

	result := []domain.UserActivity{}
	for rows.Next() {
		var row domain.UserActivity
		var role string
		if err := rows.Scan(&row.UserID, &row.Name, &row.Email, &role, &row.TransactionCount, &row.LastTransactionAt); err != nil {
			return nil, fmt.Errorf("error scanning top user row: %w", err)
		}
		row.Role = domain.UserRole(role)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top user rows: %w", err)
	}

	return result, nil
}
