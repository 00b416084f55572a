package handlers

import (
	"net/http"

	"github.com/aquatrack/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	var input service.AddExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenses.AddExpense(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenses.ListExpenses(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GetMonthlySummary returns per-month expense totals, most recent first.
func (h *ExpenseHandler) GetMonthlySummary(c *gin.Context) {
	summary, err := h.expenses.MonthlySummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
