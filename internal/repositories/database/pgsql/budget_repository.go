package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	"github.com/fintraq/budget_tracker_app/internal/models"
	"github.com/fintraq/budget_tracker_app/internal/utils/mapping"
)

const budgetColumns = `budget_id, user_id, name, description, category, amount, period, start_date, end_date, is_active, spent, created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.Amount,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.Spent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBudget inserts a new budget. spent always starts at zero regardless of
// what the caller put in the struct.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.UserID,
		m.Name,
		m.Description,
		m.Category,
		m.Amount,
		m.Period,
		m.StartDate,
		m.EndDate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, m.BudgetID)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`

	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}

	budget := mapping.ToDomainBudget(*m)
	return &budget, nil
}

// FindBudgetsByUser retrieves budgets owned by a user, newest first.
func (r *PgxBudgetRepository) FindBudgetsByUser(ctx context.Context, userID string, filter portsrepo.BudgetListFilter, limit int, offset int) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	args := []any{userID}

	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Period != nil {
		args = append(args, string(*filter.Period))
		query += fmt.Sprintf(" AND period = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}

	return mapping.ToDomainBudgetSlice(budgets), nil
}

// FindActiveBudgetsAt retrieves a user's active budgets whose window contains at.
func (r *PgxBudgetRepository) FindActiveBudgetsAt(ctx context.Context, userID string, at time.Time) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND is_active = TRUE AND start_date <= $2 AND end_date >= $2
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to query active budgets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}

	return mapping.ToDomainBudgetSlice(budgets), nil
}

// UpdateBudget updates a budget's definition fields. spent is deliberately
// not in the SET list; it belongs to AdjustSpent and RecomputeSpent alone.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)

	query := `
		UPDATE budgets
		SET name = $2, description = $3, category = $4, amount = $5, period = $6,
		    start_date = $7, end_date = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.Name,
		m.Description,
		m.Category,
		m.Amount,
		m.Period,
		m.StartDate,
		m.EndDate,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget detaches the budget's transactions and removes the budget in
// one database transaction, so no reader ever sees a dangling link.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx, `UPDATE transactions SET budget_id = NULL WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to detach transactions from budget %s: %w", budgetID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// AdjustSpent atomically adds delta to the budget's spent column. The
// read-modify-write happens inside the database, so concurrent adjustments
// never lose updates.
func (r *PgxBudgetRepository) AdjustSpent(ctx context.Context, budgetID string, delta decimal.Decimal) error {
	query := `
		UPDATE budgets
		SET spent = spent + $2, last_updated_at = NOW()
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, budgetID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust spent for budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecomputeSpent rebuilds spent for one budget from its linked expense
// transactions and returns the recomputed value.
func (r *PgxBudgetRepository) RecomputeSpent(ctx context.Context, budgetID string) (decimal.Decimal, error) {
	query := `
		UPDATE budgets b
		SET spent = COALESCE((
			SELECT SUM(t.amount)
			FROM transactions t
			WHERE t.budget_id = b.budget_id AND t.type = 'expense'
		), 0)
		WHERE b.budget_id = $1
		RETURNING b.spent;
	`
	var spent decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, budgetID).Scan(&spent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to recompute spent for budget %s: %w", budgetID, err)
	}
	return spent, nil
}

// RecomputeAllSpent rebuilds spent for every budget in one statement and
// returns the number of budgets whose value actually changed.
func (r *PgxBudgetRepository) RecomputeAllSpent(ctx context.Context) (int64, error) {
	query := `
		UPDATE budgets b
		SET spent = agg.actual
		FROM (
			SELECT b2.budget_id,
			       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0) AS actual
			FROM budgets b2
			LEFT JOIN transactions t ON t.budget_id = b2.budget_id
			GROUP BY b2.budget_id
		) agg
		WHERE b.budget_id = agg.budget_id AND b.spent <> agg.actual;
	`
	tag, err := r.Pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute all budget spent values: %w", err)
	}
	return tag.RowsAffected(), nil
}
