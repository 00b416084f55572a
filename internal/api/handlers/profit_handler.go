package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aquatrack/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfitHandler struct {
	profits *service.ProfitService
}

func NewProfitHandler(profits *service.ProfitService) *ProfitHandler {
	return &ProfitHandler{profits: profits}
}

// GetDaily returns the profit summary for one calendar date, defaulting
// to today.
func (h *ProfitHandler) GetDaily(c *gin.Context) {
	target, err := parseDateQuery(c, "date")
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.profits.Daily(c.Request.Context(), target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetMonthly returns one profit row per active month, most recent first.
func (h *ProfitHandler) GetMonthly(c *gin.Context) {
	rows, err := h.profits.Monthly(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetTotal returns the all-time profit figure.
func (h *ProfitHandler) GetTotal(c *gin.Context) {
	total, err := h.profits.Total(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_profit": total})
}

// GetSizeBreakdown returns per-bottle-size figures for one day.
func (h *ProfitHandler) GetSizeBreakdown(c *gin.Context) {
	target, err := parseDateQuery(c, "date")
	if err != nil {
		writeError(c, err)
		return
	}

	rows, err := h.profits.SizeBreakdown(c.Request.Context(), target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportMonthly streams the monthly profit rows as an XLSX download.
func (h *ProfitHandler) ExportMonthly(c *gin.Context) {
	data, err := h.profits.ExportMonthlyXLSX(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("monthly-profit-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
