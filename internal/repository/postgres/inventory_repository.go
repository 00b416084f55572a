package postgres

import (
	"context"
	"fmt"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateBatch(ctx context.Context, batch *domain.StockBatch) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO stock_batches (product_type, bottle_size, quantity, amount_paid, unit_cost, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		batch.ProductType, batch.BottleSize, batch.Quantity,
		batch.AmountPaid, batch.UnitCost, batch.Notes, batch.CreatedAt,
	).Scan(&batch.ID)
	if err != nil {
		return fmt.Errorf("failed to insert stock batch: %w", err)
	}
	return nil
}

func (r *inventoryRepository) ListBatches(ctx context.Context) ([]domain.StockBatch, error) {
	var batches []domain.StockBatch
	query := `
		SELECT id, product_type, bottle_size, quantity, amount_paid, unit_cost, notes, created_at
		FROM stock_batches
		ORDER BY created_at DESC
	`
	if err := sqlx.SelectContext(ctx, r.db, &batches, query); err != nil {
		return nil, fmt.Errorf("failed to list stock batches: %w", err)
	}
	return batches, nil
}

func (r *inventoryRepository) AvailableStock(ctx context.Context, sku domain.SKU) (int, error) {
	var total int
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_batches
		WHERE product_type = $1 AND bottle_size = $2
	`
	if err := sqlx.GetContext(ctx, r.db, &total, query, sku.ProductType, sku.BottleSize); err != nil {
		return 0, fmt.Errorf("failed to sum available stock: %w", err)
	}
	return total, nil
}
