package service

import (
	"context"
	"time"

	"github.com/aquatrack/backend-go/internal/cache"
	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// AddStockInput is the stock-entry form payload.
type AddStockInput struct {
	ProductType domain.ProductType `json:"product_type" binding:"required"`
	BottleSize  domain.BottleSize  `json:"bottle_size"`
	Quantity    int                `json:"quantity" binding:"required"`
	AmountPaid  float64            `json:"amount_paid"`
	Notes       string             `json:"notes"`
}

// StockLevel is the on-hand quantity for one SKU.
type StockLevel struct {
	SKU      domain.SKU `json:"sku"`
	Quantity int        `json:"quantity"`
}

type InventoryService struct {
	inventory repository.InventoryRepository
	cache     cache.ProfitCache
}

func NewInventoryService(inventory repository.InventoryRepository, cacheImpl cache.ProfitCache) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopProfitCache()
	}
	return &InventoryService{inventory: inventory, cache: cacheImpl}
}

// AddStock records a restocking batch. The per-unit cost is computed and
// stored at entry time, rounded to two decimal places.
func (s *InventoryService) AddStock(ctx context.Context, input AddStockInput) (*domain.StockBatch, error) {
	sku := domain.SKU{ProductType: input.ProductType, BottleSize: input.BottleSize}
	if err := sku.Validate(); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}
	if input.AmountPaid < 0 {
		return nil, domain.Validationf("amount paid cannot be negative")
	}

	unitCost := domain.Round2(input.AmountPaid / float64(input.Quantity))
	batch := &domain.StockBatch{
		ProductType: input.ProductType,
		BottleSize:  input.BottleSize,
		Quantity:    input.Quantity,
		AmountPaid:  domain.Round2(input.AmountPaid),
		UnitCost:    &unitCost,
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
	}

	if err := s.inventory.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: profit cache invalidation failed")
	}

	return batch, nil
}

// StockHistory lists every batch, newest first.
func (s *InventoryService) StockHistory(ctx context.Context) ([]domain.StockBatch, error) {
	return s.inventory.ListBatches(ctx)
}

// AvailableStock returns the on-hand quantity for one SKU.
func (s *InventoryService) AvailableStock(ctx context.Context, sku domain.SKU) (int, error) {
	if err := sku.Validate(); err != nil {
		return 0, err
	}
	return s.inventory.AvailableStock(ctx, sku)
}

// CurrentStock reports on-hand quantities for every SKU in canonical
// order: each water-bottle size, then cold drinks.
func (s *InventoryService) CurrentStock(ctx context.Context) ([]StockLevel, error) {
	batches, err := s.inventory.ListBatches(ctx)
	if err != nil {
		return nil, err
	}

	totals := map[domain.SKU]int{}
	for _, b := range batches {
		totals[b.SKU()] += b.Quantity
	}

	levels := make([]StockLevel, 0, len(domain.BottleSizes)+1)
	for _, size := range domain.BottleSizes {
		sku := domain.SKU{ProductType: domain.ProductWaterBottle, BottleSize: size}
		levels = append(levels, StockLevel{SKU: sku, Quantity: totals[sku]})
	}
	coldDrink := domain.SKU{ProductType: domain.ProductColdDrink}
	levels = append(levels, StockLevel{SKU: coldDrink, Quantity: totals[coldDrink]})
	return levels, nil
}
