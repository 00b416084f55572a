package handlers

import (
	"net/http"
	"strconv"

	"github.com/aquatrack/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	sales *service.SaleService
}

func NewSaleHandler(sales *service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// CreateSale records a sale and depletes stock atomically.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var input service.CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.sales.CreateSale(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	sales, err := h.sales.ListSales(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetLendingLedger lists sales still marked as lending.
func (h *SaleHandler) GetLendingLedger(c *gin.Context) {
	sales, err := h.sales.LendingLedger(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// RecordPayment settles part or all of a sale's outstanding amount.
func (h *SaleHandler) RecordPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale id"})
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.sales.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// MarkPending reclassifies a lending sale as pending.
func (h *SaleHandler) MarkPending(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale id"})
		return
	}

	sale, err := h.sales.MarkPending(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// GetTodayTotal returns the sum of today's sale amounts.
func (h *SaleHandler) GetTodayTotal(c *gin.Context) {
	total, err := h.sales.TodayTotal(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// GetCustomerLedger groups named-customer sales into per-customer summaries.
func (h *SaleHandler) GetCustomerLedger(c *gin.Context) {
	customers, err := h.sales.CustomerLedger(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}
