package postgres

import (
	"context"
	"fmt"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type expenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *expenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (category, amount, reason, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		expense.Category, expense.Amount, expense.Reason, expense.Description, expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	var expenses []domain.Expense
	query := `
		SELECT id, category, amount, reason, description, created_at
		FROM expenses
		ORDER BY created_at DESC
	`
	if err := sqlx.SelectContext(ctx, r.db, &expenses, query); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepository) MonthlySummary(ctx context.Context) ([]domain.ExpenseMonthlySummary, error) {
	var rows []domain.ExpenseMonthlySummary
	query := `
		SELECT
			to_char(created_at, 'YYYY-MM') AS month,
			COALESCE(SUM(amount) FILTER (WHERE category = 'labour'), 0) AS labour,
			COALESCE(SUM(amount) FILTER (WHERE category = 'miscellaneous'), 0) AS miscellaneous,
			COALESCE(SUM(amount), 0) AS total
		FROM expenses
		GROUP BY to_char(created_at, 'YYYY-MM')
		ORDER BY month DESC
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}
	return rows, nil
}
