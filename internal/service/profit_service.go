package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aquatrack/backend-go/internal/cache"
	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/repository"
	"github.com/aquatrack/backend-go/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type ProfitService struct {
	sales     repository.SaleRepository
	inventory repository.InventoryRepository
	cache     cache.ProfitCache
}

func NewProfitService(sales repository.SaleRepository, inventory repository.InventoryRepository, cacheImpl cache.ProfitCache) *ProfitService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopProfitCache()
	}
	return &ProfitService{sales: sales, inventory: inventory, cache: cacheImpl}
}

// Daily computes the profit summary for one calendar date.
func (s *ProfitService) Daily(ctx context.Context, target time.Time) (*report.DailySummary, error) {
	dateKey := target.Format("2006-01-02")
	if summary, ok, err := s.cache.GetDaily(ctx, dateKey); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("profit: cache get daily failed")
	}

	sales, batches, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summary := report.DailyProfit(sales, batches, target)
	if len(summary.ZeroCostSKUs) > 0 {
		// Sales with no purchase history cost out at zero and overstate
		// profit; surface them so the data-entry gap can be corrected.
		log.Warn().
			Str("date", dateKey).
			Strs("skus", summary.ZeroCostSKUs).
			Msg("profit: sales found with zero acquisition cost")
	}

	if err := s.cache.SetDaily(ctx, dateKey, &summary); err != nil {
		log.Warn().Err(err).Msg("profit: cache set daily failed")
	}
	return &summary, nil
}

// Monthly computes one profit row per active month, most recent first.
func (s *ProfitService) Monthly(ctx context.Context) ([]report.MonthlyRow, error) {
	if rows, ok, err := s.cache.GetMonthly(ctx); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("profit: cache get monthly failed")
	}

	sales, batches, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := report.MonthlyProfits(sales, batches)
	if err := s.cache.SetMonthly(ctx, rows); err != nil {
		log.Warn().Err(err).Msg("profit: cache set monthly failed")
	}
	return rows, nil
}

// Total is the all-time profit figure.
func (s *ProfitService) Total(ctx context.Context) (float64, error) {
	sales, batches, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return report.TotalProfit(sales, batches), nil
}

// SizeBreakdown reports the per-bottle-size figures for one day.
func (s *ProfitService) SizeBreakdown(ctx context.Context, target time.Time) ([]report.SizeRow, error) {
	sales, batches, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.SizeBreakdown(sales, batches, target), nil
}

// ExportMonthlyXLSX renders the monthly profit rows as a spreadsheet.
func (s *ProfitService) ExportMonthlyXLSX(ctx context.Context) ([]byte, error) {
	rows, err := s.Monthly(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Monthly Profit"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Month", "Revenue", "Cost", "Profit", "Sales"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		values := []any{row.Month, row.Revenue, row.Cost, row.Profit, row.SalesCount}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ProfitService) snapshot(ctx context.Context) ([]domain.Sale, []domain.StockBatch, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	batches, err := s.inventory.ListBatches(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sales, batches, nil
}
