package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type deliveryRepository struct {
	db *DB
}

func NewDeliveryRepository(db *DB) *deliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, record *domain.DeliveryRecord) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO delivery_records (image_url, image_key, notes, created_at, expire_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		record.ImageURL, record.ImageKey, record.Notes, record.CreatedAt, record.ExpireAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to insert delivery record: %w", err)
	}
	return nil
}

func (r *deliveryRepository) List(ctx context.Context) ([]domain.DeliveryRecord, error) {
	var records []domain.DeliveryRecord
	query := `
		SELECT id, image_url, image_key, notes, created_at, expire_at
		FROM delivery_records
		ORDER BY created_at DESC
	`
	if err := sqlx.SelectContext(ctx, r.db, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list delivery records: %w", err)
	}
	return records, nil
}

func (r *deliveryRepository) ListExpired(ctx context.Context, now time.Time) ([]domain.DeliveryRecord, error) {
	var records []domain.DeliveryRecord
	query := `
		SELECT id, image_url, image_key, notes, created_at, expire_at
		FROM delivery_records
		WHERE expire_at <= $1
		ORDER BY expire_at ASC
	`
	if err := sqlx.SelectContext(ctx, r.db, &records, query, now.UnixMilli()); err != nil {
		return nil, fmt.Errorf("failed to list expired delivery records: %w", err)
	}
	return records, nil
}

func (r *deliveryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM delivery_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete delivery record: %w", err)
	}
	return nil
}
