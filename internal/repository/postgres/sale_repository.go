package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type saleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *saleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, product_type, bottle_size, quantity, price_per_unit,
	total_amount, amount_paid, amount_pending, payment_mode, payment_status,
	customer_name, notes, created_at`

func (r *saleRepository) CreateWithDepletion(ctx context.Context, sale *domain.Sale) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Lock the SKU's batches so the sufficiency check and the decrement
		// are one atomic step. Ordering by created_at fixes the
		// first-created-first-depleted policy.
		var batches []domain.StockBatch
		err := tx.SelectContext(ctx, &batches, `
			SELECT id, product_type, bottle_size, quantity, amount_paid, unit_cost, notes, created_at
			FROM stock_batches
			WHERE product_type = $1 AND bottle_size = $2 AND quantity > 0
			ORDER BY created_at ASC, id ASC
			FOR UPDATE
		`, sale.ProductType, sale.BottleSize)
		if err != nil {
			return fmt.Errorf("failed to lock stock batches: %w", err)
		}

		plan, err := domain.PlanDepletion(batches, sale.Quantity)
		if err != nil {
			return err
		}

		for _, dec := range plan {
			if _, err := tx.ExecContext(ctx,
				`UPDATE stock_batches SET quantity = $1 WHERE id = $2`,
				dec.NewQuantity, dec.BatchID,
			); err != nil {
				return fmt.Errorf("failed to decrement batch %d: %w", dec.BatchID, err)
			}
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO sales (
				product_type, bottle_size, quantity, price_per_unit, total_amount,
				amount_paid, amount_pending, payment_mode, payment_status,
				customer_name, notes, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		`,
			sale.ProductType, sale.BottleSize, sale.Quantity, sale.PricePerUnit,
			sale.TotalAmount, sale.AmountPaid, sale.AmountPending, sale.PaymentMode,
			sale.PaymentStatus, sale.CustomerName, sale.Notes, sale.CreatedAt,
		).Scan(&sale.ID)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
		return nil
	})
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.db, &sales, query); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (r *saleRepository) ListByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Sale, error) {
	var sales []domain.Sale
	query := `SELECT ` + saleColumns + ` FROM sales WHERE payment_status = $1 ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.db, &sales, query, status); err != nil {
		return nil, fmt.Errorf("failed to list sales by status: %w", err)
	}
	return sales, nil
}

func (r *saleRepository) ListWithCustomer(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	query := `SELECT ` + saleColumns + ` FROM sales WHERE customer_name <> '' ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.db, &sales, query); err != nil {
		return nil, fmt.Errorf("failed to list customer sales: %w", err)
	}
	return sales, nil
}

func (r *saleRepository) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	var sale domain.Sale
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db, &sale, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &sale, nil
}

func (r *saleRepository) RecordPayment(ctx context.Context, id int64, mutate func(*domain.Sale) error) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &sale, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to lock sale: %w", err)
		}

		if err := mutate(&sale); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			UPDATE sales
			SET amount_paid = $1, amount_pending = $2, payment_status = $3
			WHERE id = $4
		`, sale.AmountPaid, sale.AmountPending, sale.PaymentStatus, sale.ID)
		if err != nil {
			return fmt.Errorf("failed to update sale payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) TotalBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE created_at >= $1 AND created_at < $2`
	if err := sqlx.GetContext(ctx, r.db, &total, query, start, end); err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}
