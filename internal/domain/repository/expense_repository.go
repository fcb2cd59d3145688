package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/common"
	"fintrack/internal/domain/model"
)

type ExpenseRepository interface {
	Create(ctx context.Context, exp *model.Expense) error
	FindByID(ctx context.Context, id int64) (*model.Expense, error)
	ListByUser(ctx context.Context, userID int64, categorySlug string) ([]model.Expense, error)
	ListAll(ctx context.Context, categorySlug string) ([]model.Expense, error)
	Update(ctx context.Context, exp *model.Expense) error
	Delete(ctx context.Context, id int64) error
}

type pgExpenseRepository struct {
	db *sql.DB
}

func NewPgExpenseRepository(db *sql.DB) ExpenseRepository {
	return &pgExpenseRepository{db: db}
}

const expenseColumns = `id, user_id, description, category, category_slug, amount_cents, spent_at, created_at, updated_at`

func (r *pgExpenseRepository) Create(ctx context.Context, exp *model.Expense) error {
	query := `INSERT INTO expenses (user_id, description, category, category_slug, amount_cents, spent_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		exp.UserID, exp.Description, exp.Category, exp.CategorySlug, exp.AmountCents, exp.SpentAt,
	).Scan(&exp.ID, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgExpenseRepository.Create: %w", err)
	}
	return nil
}

func (r *pgExpenseRepository) FindByID(ctx context.Context, id int64) (*model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	exp := &model.Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&exp.ID, &exp.UserID, &exp.Description, &exp.Category, &exp.CategorySlug,
		&exp.AmountCents, &exp.SpentAt, &exp.CreatedAt, &exp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgExpenseRepository.FindByID: %w", err)
	}
	return exp, nil
}

func (r *pgExpenseRepository) ListByUser(ctx context.Context, userID int64, categorySlug string) ([]model.Expense, error) {
	if categorySlug != "" {
		query := `SELECT ` + expenseColumns + ` FROM expenses
		          WHERE user_id = $1 AND category_slug = $2 ORDER BY spent_at DESC`
		return r.list(ctx, query, userID, categorySlug)
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY spent_at DESC`
	return r.list(ctx, query, userID)
}

func (r *pgExpenseRepository) ListAll(ctx context.Context, categorySlug string) ([]model.Expense, error) {
	if categorySlug != "" {
		query := `SELECT ` + expenseColumns + ` FROM expenses WHERE category_slug = $1 ORDER BY spent_at DESC`
		return r.list(ctx, query, categorySlug)
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY spent_at DESC`
	return r.list(ctx, query)
}

func (r *pgExpenseRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgExpenseRepository.list: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		var exp model.Expense
		if err := rows.Scan(
			&exp.ID, &exp.UserID, &exp.Description, &exp.Category, &exp.CategorySlug,
			&exp.AmountCents, &exp.SpentAt, &exp.CreatedAt, &exp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgExpenseRepository.list scan: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgExpenseRepository.list rows: %w", err)
	}
	return expenses, nil
}

func (r *pgExpenseRepository) Update(ctx context.Context, exp *model.Expense) error {
	query := `UPDATE expenses
	          SET description = $1, category = $2, category_slug = $3, amount_cents = $4, spent_at = $5, updated_at = now()
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query,
		exp.Description, exp.Category, exp.CategorySlug, exp.AmountCents, exp.SpentAt, exp.ID,
	)
	if err != nil {
		return fmt.Errorf("pgExpenseRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgExpenseRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgExpenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgExpenseRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgExpenseRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
