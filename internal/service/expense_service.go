package service

import (
	"context"
	"strings"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/repository"
)

// AddExpenseInput is the expense-entry form payload.
type AddExpenseInput struct {
	Category    domain.ExpenseCategory `json:"category" binding:"required"`
	Amount      float64                `json:"amount" binding:"required"`
	Reason      string                 `json:"reason" binding:"required"`
	Description string                 `json:"description"`
}

type ExpenseService struct {
	expenses repository.ExpenseRepository
}

func NewExpenseService(expenses repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) AddExpense(ctx context.Context, input AddExpenseInput) (*domain.Expense, error) {
	if input.Category != domain.ExpenseLabour && input.Category != domain.ExpenseMiscellaneous {
		return nil, domain.Validationf("unknown expense category %q", input.Category)
	}
	if input.Amount <= 0 {
		return nil, domain.Validationf("amount must be greater than 0")
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, domain.Validationf("a reason is required")
	}

	expense := &domain.Expense{
		Category:    input.Category,
		Amount:      domain.Round2(input.Amount),
		Reason:      reason,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now(),
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *ExpenseService) MonthlySummary(ctx context.Context) ([]domain.ExpenseMonthlySummary, error) {
	return s.expenses.MonthlySummary(ctx)
}
