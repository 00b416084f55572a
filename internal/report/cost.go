// Package report computes profit and cost-of-goods-sold figures from
// in-memory sale and stock batch snapshots. Everything here is pure:
// fixed inputs produce identical output.
package report

import (
	"math"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
)

// AverageUnitCost resolves the weighted-average acquisition cost for a SKU
// using every batch created on or before cutoff. A batch contributes
// unitCost*quantity when a unit cost was stored, otherwise its amountPaid.
// When no batch exists on or before the cutoff (a sale recorded before any
// stock entry), the all-time average across the SKU's batches is used
// instead. With no purchase history at all the cost is 0.
func AverageUnitCost(sku domain.SKU, cutoff time.Time, batches []domain.StockBatch) float64 {
	avg, ok := weightedAverage(sku, batches, func(b domain.StockBatch) bool {
		return !b.CreatedAt.After(cutoff)
	})
	if ok {
		return avg
	}
	avg, _ = weightedAverage(sku, batches, func(domain.StockBatch) bool { return true })
	return avg
}

func weightedAverage(sku domain.SKU, batches []domain.StockBatch, include func(domain.StockBatch) bool) (float64, bool) {
	var totalQty int
	var totalCost float64
	for _, b := range batches {
		if b.SKU() != sku || !include(b) {
			continue
		}
		qty := b.Quantity
		if qty < 0 {
			qty = 0
		}
		totalQty += qty
		if b.UnitCost != nil {
			totalCost += *b.UnitCost * float64(qty)
		} else {
			totalCost += b.AmountPaid
		}
	}
	if totalQty == 0 {
		return 0, false
	}
	avg := totalCost / float64(totalQty)
	if math.IsNaN(avg) || math.IsInf(avg, 0) || avg < 0 {
		return 0, false
	}
	return avg, true
}

// SaleCOGS is the cost basis of one sale: the weighted-average unit cost of
// its SKU as of the sale date times the quantity sold. Malformed quantities
// are treated as zero, never an error.
func SaleCOGS(sale domain.Sale, batches []domain.StockBatch) float64 {
	qty := sale.Quantity
	if qty < 0 {
		qty = 0
	}
	return AverageUnitCost(sale.SKU(), sale.CreatedAt, batches) * float64(qty)
}

func saleRevenue(sale domain.Sale) float64 {
	price := sale.PricePerUnit
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		price = 0
	}
	qty := sale.Quantity
	if qty < 0 {
		qty = 0
	}
	return price * float64(qty)
}
