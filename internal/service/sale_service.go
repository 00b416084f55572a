package service

import (
	"context"
	"sort"
	"time"

	"github.com/aquatrack/backend-go/internal/cache"
	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// CreateSaleInput is the sale-entry form payload.
type CreateSaleInput struct {
	ProductType  domain.ProductType `json:"product_type" binding:"required"`
	BottleSize   domain.BottleSize  `json:"bottle_size"`
	Quantity     int                `json:"quantity" binding:"required"`
	PricePerUnit float64            `json:"price_per_unit"`
	AmountPaid   float64            `json:"amount_paid"`
	PaymentMode  domain.PaymentMode `json:"payment_mode"`
	// Status requested for the unpaid remainder: pending or lending.
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	CustomerName  string               `json:"customer_name"`
	Notes         string               `json:"notes"`
}

type SaleService struct {
	sales repository.SaleRepository
	cache cache.ProfitCache
}

func NewSaleService(sales repository.SaleRepository, cacheImpl cache.ProfitCache) *SaleService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopProfitCache()
	}
	return &SaleService{sales: sales, cache: cacheImpl}
}

// CreateSale validates the payload, then inserts the sale and depletes
// stock in one atomic commit. Stock sufficiency is re-checked inside that
// commit, so the caller-side availability display is advisory only.
func (s *SaleService) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	sku := domain.SKU{ProductType: input.ProductType, BottleSize: input.BottleSize}
	if err := sku.Validate(); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}
	if input.PricePerUnit < 0 {
		return nil, domain.Validationf("price per unit cannot be negative")
	}
	if input.AmountPaid < 0 {
		return nil, domain.Validationf("amount paid cannot be negative")
	}

	total := domain.Round2(float64(input.Quantity) * input.PricePerUnit)
	if input.AmountPaid > total {
		return nil, domain.Validationf("amount paid cannot be greater than total amount")
	}
	pending := domain.Round2(total - input.AmountPaid)

	status := input.PaymentStatus
	if pending <= 0 {
		status = domain.PaymentPaid
	} else if status != domain.PaymentPending && status != domain.PaymentLending {
		return nil, domain.Validationf("payment status must be pending or lending when an amount is outstanding")
	}

	mode := input.PaymentMode
	if mode == "" {
		mode = domain.PaymentModeCash
	} else if mode != domain.PaymentModeCash && mode != domain.PaymentModeOnline {
		return nil, domain.Validationf("unknown payment mode %q", mode)
	}

	sale := &domain.Sale{
		ProductType:   input.ProductType,
		BottleSize:    input.BottleSize,
		Quantity:      input.Quantity,
		PricePerUnit:  input.PricePerUnit,
		TotalAmount:   total,
		AmountPaid:    domain.Round2(input.AmountPaid),
		AmountPending: pending,
		PaymentMode:   mode,
		PaymentStatus: status,
		CustomerName:  input.CustomerName,
		Notes:         input.Notes,
		CreatedAt:     time.Now(),
	}

	if err := s.sales.CreateWithDepletion(ctx, sale); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sales: profit cache invalidation failed")
	}

	return sale, nil
}

func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.List(ctx)
}

// LendingLedger returns all sales still carrying lending status, newest
// first.
func (s *SaleService) LendingLedger(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.ListByStatus(ctx, domain.PaymentLending)
}

// RecordPayment applies a partial or full settlement to a pending or
// lending sale. Lock, validate, and write happen in one transaction.
func (s *SaleService) RecordPayment(ctx context.Context, saleID int64, amount float64) (*domain.Sale, error) {
	return s.sales.RecordPayment(ctx, saleID, func(sale *domain.Sale) error {
		return sale.ApplyPayment(amount)
	})
}

// MarkPending reclassifies a lending sale as pending without moving money.
func (s *SaleService) MarkPending(ctx context.Context, saleID int64) (*domain.Sale, error) {
	return s.sales.RecordPayment(ctx, saleID, func(sale *domain.Sale) error {
		return sale.MarkPending()
	})
}

// CustomerLedger groups named-customer sales into per-customer summaries,
// ordered by total amount descending.
func (s *SaleService) CustomerLedger(ctx context.Context) ([]domain.CustomerSummary, error) {
	sales, err := s.sales.ListWithCustomer(ctx)
	if err != nil {
		return nil, err
	}

	byName := map[string]*domain.CustomerSummary{}
	for _, sale := range sales {
		summary, ok := byName[sale.CustomerName]
		if !ok {
			summary = &domain.CustomerSummary{Name: sale.CustomerName}
			byName[sale.CustomerName] = summary
		}
		summary.TotalSales++
		summary.TotalAmount = domain.Round2(summary.TotalAmount + sale.TotalAmount)
		summary.TotalPaid = domain.Round2(summary.TotalPaid + sale.AmountPaid)
		summary.TotalPending = domain.Round2(summary.TotalPending + sale.AmountPending)
		summary.Sales = append(summary.Sales, sale)
	}

	customers := make([]domain.CustomerSummary, 0, len(byName))
	for _, summary := range byName {
		customers = append(customers, *summary)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].TotalAmount > customers[j].TotalAmount
	})
	return customers, nil
}

// TodayTotal sums today's sale amounts using local midnight boundaries.
func (s *SaleService) TodayTotal(ctx context.Context) (float64, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	total, err := s.sales.TotalBetween(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return domain.Round2(total), nil
}
