package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
)

// DailySummary is one calendar day's profit figures.
type DailySummary struct {
	Date         string   `json:"date"`
	Revenue      float64  `json:"revenue"`
	Cost         float64  `json:"cost"`
	Profit       float64  `json:"profit"`
	UnitsSold    int      `json:"units_sold"`
	SalesCount   int      `json:"sales_count"`
	ZeroCostSKUs []string `json:"zero_cost_skus,omitempty"`
}

// MonthlyRow is one month's profit figures.
type MonthlyRow struct {
	Month      string  `json:"month"`
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
	Profit     float64 `json:"profit"`
	SalesCount int     `json:"sales_count"`
}

// SizeRow is the per-bottle-size breakdown for a single day.
type SizeRow struct {
	Size        domain.BottleSize `json:"size"`
	Quantity    int               `json:"quantity"`
	AvgUnitCost float64           `json:"avg_unit_cost"`
	Revenue     float64           `json:"revenue"`
	Cost        float64           `json:"cost"`
	Profit      float64           `json:"profit"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// DailyProfit buckets sales by exact calendar date (year/month/day in the
// target's location, not a rolling 24h window). Cost is sale-driven: the
// COGS of each selected sale, not the day's purchase spend.
func DailyProfit(sales []domain.Sale, batches []domain.StockBatch, target time.Time) DailySummary {
	summary := DailySummary{Date: target.Format("2006-01-02")}
	zeroCost := map[string]struct{}{}

	for _, sale := range sales {
		if !sameDay(sale.CreatedAt.In(target.Location()), target) {
			continue
		}
		revenue := saleRevenue(sale)
		cost := SaleCOGS(sale, batches)
		summary.Revenue += revenue
		summary.Cost += cost
		summary.UnitsSold += sale.Quantity
		summary.SalesCount++
		if cost == 0 && sale.Quantity > 0 {
			zeroCost[sale.SKU().String()] = struct{}{}
		}
	}

	summary.Revenue = domain.Round2(summary.Revenue)
	summary.Cost = domain.Round2(summary.Cost)
	summary.Profit = domain.Round2(summary.Revenue - summary.Cost)
	summary.ZeroCostSKUs = sortedKeys(zeroCost)
	return summary
}

// MonthlyProfits produces one row per month that has sales, most recent
// month first.
func MonthlyProfits(sales []domain.Sale, batches []domain.StockBatch) []MonthlyRow {
	byMonth := map[string]*MonthlyRow{}
	for _, sale := range sales {
		key := monthKey(sale.CreatedAt)
		row, ok := byMonth[key]
		if !ok {
			row = &MonthlyRow{Month: key}
			byMonth[key] = row
		}
		row.Revenue += saleRevenue(sale)
		row.Cost += SaleCOGS(sale, batches)
		row.SalesCount++
	}

	rows := make([]MonthlyRow, 0, len(byMonth))
	for _, row := range byMonth {
		row.Revenue = domain.Round2(row.Revenue)
		row.Cost = domain.Round2(row.Cost)
		row.Profit = domain.Round2(row.Revenue - row.Cost)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month > rows[j].Month })
	return rows
}

// TotalProfit is the all-time sum over sales of revenue minus COGS.
func TotalProfit(sales []domain.Sale, batches []domain.StockBatch) float64 {
	var total float64
	for _, sale := range sales {
		total += saleRevenue(sale) - SaleCOGS(sale, batches)
	}
	return domain.Round2(total)
}

// SizeBreakdown groups the target day's water-bottle sales by size. Rows
// follow the canonical size order and carry the weighted-average unit cost
// as of end of day. Sizes with no sales on the day are omitted.
func SizeBreakdown(sales []domain.Sale, batches []domain.StockBatch, target time.Time) []SizeRow {
	bySize := map[domain.BottleSize]*SizeRow{}
	for _, sale := range sales {
		if sale.ProductType != domain.ProductWaterBottle {
			continue
		}
		if !sameDay(sale.CreatedAt.In(target.Location()), target) {
			continue
		}
		row, ok := bySize[sale.BottleSize]
		if !ok {
			row = &SizeRow{Size: sale.BottleSize}
			bySize[sale.BottleSize] = row
		}
		row.Quantity += sale.Quantity
		row.Revenue += saleRevenue(sale)
		row.Cost += SaleCOGS(sale, batches)
	}

	y, m, d := target.Date()
	endOfDay := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), target.Location())

	rows := make([]SizeRow, 0, len(bySize))
	for _, size := range domain.BottleSizes {
		row, ok := bySize[size]
		if !ok {
			continue
		}
		sku := domain.SKU{ProductType: domain.ProductWaterBottle, BottleSize: size}
		row.AvgUnitCost = domain.Round2(AverageUnitCost(sku, endOfDay, batches))
		row.Revenue = domain.Round2(row.Revenue)
		row.Cost = domain.Round2(row.Cost)
		row.Profit = domain.Round2(row.Revenue - row.Cost)
		rows = append(rows, *row)
	}
	return rows
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
