package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/common"
	"fintrack/internal/domain/model"
)

type InvestmentRepository interface {
	Create(ctx context.Context, inv *model.Investment) error
	FindByID(ctx context.Context, id int64) (*model.Investment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Investment, error)
	ListAll(ctx context.Context) ([]model.Investment, error)
	Update(ctx context.Context, inv *model.Investment) error
	Delete(ctx context.Context, id int64) error
}

type pgInvestmentRepository struct {
	db *sql.DB
}

func NewPgInvestmentRepository(db *sql.DB) InvestmentRepository {
	return &pgInvestmentRepository{db: db}
}

const investmentColumns = `id, user_id, name, kind, amount_cents, currency, purchased_at, created_at, updated_at`

func (r *pgInvestmentRepository) Create(ctx context.Context, inv *model.Investment) error {
	query := `INSERT INTO investments (user_id, name, kind, amount_cents, currency, purchased_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		inv.UserID, inv.Name, inv.Kind, inv.AmountCents, inv.Currency, inv.PurchasedAt,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgInvestmentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgInvestmentRepository) FindByID(ctx context.Context, id int64) (*model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`
	inv := &model.Investment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.UserID, &inv.Name, &inv.Kind, &inv.AmountCents, &inv.Currency,
		&inv.PurchasedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgInvestmentRepository.FindByID: %w", err)
	}
	return inv, nil
}

func (r *pgInvestmentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1 ORDER BY purchased_at DESC`
	return r.list(ctx, query, userID)
}

func (r *pgInvestmentRepository) ListAll(ctx context.Context) ([]model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments ORDER BY purchased_at DESC`
	return r.list(ctx, query)
}

func (r *pgInvestmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgInvestmentRepository.list: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}
	for rows.Next() {
		var inv model.Investment
		if err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.Name, &inv.Kind, &inv.AmountCents, &inv.Currency,
			&inv.PurchasedAt, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgInvestmentRepository.list scan: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgInvestmentRepository.list rows: %w", err)
	}
	return investments, nil
}

func (r *pgInvestmentRepository) Update(ctx context.Context, inv *model.Investment) error {
	query := `UPDATE investments
	          SET name = $1, kind = $2, amount_cents = $3, currency = $4, purchased_at = $5, updated_at = now()
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query,
		inv.Name, inv.Kind, inv.AmountCents, inv.Currency, inv.PurchasedAt, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("pgInvestmentRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgInvestmentRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgInvestmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgInvestmentRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgInvestmentRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
