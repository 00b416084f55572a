package repository

import (
	"context"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
)

// SaleRepository persists sale transactions. Creation and payment updates
// run inside database transactions; reads are plain queries.
type SaleRepository interface {
	// CreateWithDepletion inserts the sale and applies its stock decrement
	// plan in one transaction. The availability re-check happens on locked
	// batch rows inside the same transaction, so concurrent sales against a
	// low-stock SKU cannot both pass.
	CreateWithDepletion(ctx context.Context, sale *domain.Sale) error
	List(ctx context.Context) ([]domain.Sale, error)
	ListByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Sale, error)
	ListWithCustomer(ctx context.Context) ([]domain.Sale, error)
	Get(ctx context.Context, id int64) (*domain.Sale, error)
	// RecordPayment locks the sale row, applies mutate, and persists the
	// result. mutate returning an error aborts with no change.
	RecordPayment(ctx context.Context, id int64, mutate func(*domain.Sale) error) (*domain.Sale, error)
	TotalBetween(ctx context.Context, start, end time.Time) (float64, error)
}

// InventoryRepository persists stock batches.
type InventoryRepository interface {
	CreateBatch(ctx context.Context, batch *domain.StockBatch) error
	ListBatches(ctx context.Context) ([]domain.StockBatch, error)
	AvailableStock(ctx context.Context, sku domain.SKU) (int, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	List(ctx context.Context) ([]domain.Expense, error)
	MonthlySummary(ctx context.Context) ([]domain.ExpenseMonthlySummary, error)
}

type DeliveryRepository interface {
	Create(ctx context.Context, record *domain.DeliveryRecord) error
	List(ctx context.Context) ([]domain.DeliveryRecord, error)
	// ListExpired returns records whose expireAt deadline (epoch ms) has
	// passed as of now.
	ListExpired(ctx context.Context, now time.Time) ([]domain.DeliveryRecord, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
