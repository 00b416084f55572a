package report

import (
	"testing"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
)

func wbSale(size domain.BottleSize, qty int, price float64, createdAt time.Time) domain.Sale {
	return domain.Sale{
		ProductType:  domain.ProductWaterBottle,
		BottleSize:   size,
		Quantity:     qty,
		PricePerUnit: price,
		TotalAmount:  price * float64(qty),
		CreatedAt:    createdAt,
	}
}

func TestDailyProfitCalendarBoundaries(t *testing.T) {
	target := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	batches := []domain.StockBatch{
		wbBatch(1, domain.Size500ml, 100, 2, target.AddDate(0, 0, -10)),
	}
	sales := []domain.Sale{
		// Edges of the target day are in.
		wbSale(domain.Size500ml, 1, 10, time.Date(2026, 4, 15, 0, 0, 1, 0, time.UTC)),
		wbSale(domain.Size500ml, 1, 10, time.Date(2026, 4, 15, 23, 59, 59, 0, time.UTC)),
		// Adjacent days are out, even within 24h of the target instant.
		wbSale(domain.Size500ml, 1, 10, time.Date(2026, 4, 14, 23, 59, 59, 0, time.UTC)),
		wbSale(domain.Size500ml, 1, 10, time.Date(2026, 4, 16, 0, 0, 1, 0, time.UTC)),
	}

	summary := DailyProfit(sales, batches, target)
	if summary.SalesCount != 2 {
		t.Errorf("sales count = %d, want 2", summary.SalesCount)
	}
	if summary.Revenue != 20 {
		t.Errorf("revenue = %.2f, want 20", summary.Revenue)
	}
	if summary.Cost != 4 {
		t.Errorf("cost = %.2f, want 4", summary.Cost)
	}
	if summary.Profit != 16 {
		t.Errorf("profit = %.2f, want 16", summary.Profit)
	}
}

func TestDailyProfitFlagsZeroCostSKUs(t *testing.T) {
	target := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		wbSale(domain.Size200ml, 2, 5, target),
	}

	summary := DailyProfit(sales, nil, target)
	if summary.Cost != 0 {
		t.Errorf("cost = %.2f, want 0 with no purchase history", summary.Cost)
	}
	if summary.Profit != summary.Revenue {
		t.Errorf("profit = %.2f, want full revenue %.2f", summary.Profit, summary.Revenue)
	}
	if len(summary.ZeroCostSKUs) != 1 || summary.ZeroCostSKUs[0] != "waterbottle/200ml" {
		t.Errorf("zero-cost skus = %v, want [waterbottle/200ml]", summary.ZeroCostSKUs)
	}
}

func TestMonthlyProfitsDescending(t *testing.T) {
	batches := []domain.StockBatch{
		wbBatch(1, domain.Size500ml, 100, 2, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)),
	}
	sales := []domain.Sale{
		wbSale(domain.Size500ml, 1, 10, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)),
		wbSale(domain.Size500ml, 2, 10, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)),
		wbSale(domain.Size500ml, 1, 10, time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)),
		wbSale(domain.Size500ml, 1, 10, time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)),
	}

	rows := MonthlyProfits(sales, batches)
	wantMonths := []string{"2026-03", "2026-02", "2026-01"}
	if len(rows) != len(wantMonths) {
		t.Fatalf("rows = %d, want %d", len(rows), len(wantMonths))
	}
	for i, month := range wantMonths {
		if rows[i].Month != month {
			t.Errorf("rows[%d].Month = %q, want %q", i, rows[i].Month, month)
		}
	}
	if rows[0].SalesCount != 2 {
		t.Errorf("march sales count = %d, want 2", rows[0].SalesCount)
	}
	if rows[0].Revenue != 30 || rows[0].Cost != 6 || rows[0].Profit != 24 {
		t.Errorf("march row = %+v, want revenue 30 cost 6 profit 24", rows[0])
	}
}

func TestTotalProfit(t *testing.T) {
	batches := []domain.StockBatch{
		wbBatch(1, domain.Size500ml, 100, 2, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)),
	}
	sales := []domain.Sale{
		wbSale(domain.Size500ml, 5, 10, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)),
		wbSale(domain.Size500ml, 3, 8, time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)),
	}

	// (5*10 - 5*2) + (3*8 - 3*2) = 40 + 18
	if got := TotalProfit(sales, batches); got != 58 {
		t.Errorf("total profit = %.2f, want 58", got)
	}
}

func TestSizeBreakdownCanonicalOrder(t *testing.T) {
	target := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	batches := []domain.StockBatch{
		wbBatch(1, domain.Size200ml, 50, 1, target.AddDate(0, 0, -5)),
		wbBatch(2, domain.Size2l, 50, 4, target.AddDate(0, 0, -5)),
	}
	sales := []domain.Sale{
		// Out-of-order entry; output must follow the canonical size order.
		wbSale(domain.Size2l, 2, 12, target),
		wbSale(domain.Size200ml, 4, 3, target),
		// Cold drinks never appear in the size breakdown.
		{
			ProductType:  domain.ProductColdDrink,
			Quantity:     10,
			PricePerUnit: 1,
			CreatedAt:    target,
		},
		// Other-day water bottle sales are excluded.
		wbSale(domain.Size200ml, 9, 3, target.AddDate(0, 0, -1)),
	}

	rows := SizeBreakdown(sales, batches, target)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Size != domain.Size200ml || rows[1].Size != domain.Size2l {
		t.Errorf("order = [%s %s], want [200ml 2l]", rows[0].Size, rows[1].Size)
	}
	if rows[0].Quantity != 4 || rows[0].Revenue != 12 || rows[0].Cost != 4 || rows[0].Profit != 8 {
		t.Errorf("200ml row = %+v, want qty 4 revenue 12 cost 4 profit 8", rows[0])
	}
	if rows[1].AvgUnitCost != 4 {
		t.Errorf("2l avg unit cost = %.2f, want 4", rows[1].AvgUnitCost)
	}
}
