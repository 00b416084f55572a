package handlers

import (
	"net/http"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventory *service.InventoryService
}

func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// AddStock records a restocking batch.
func (h *InventoryHandler) AddStock(c *gin.Context) {
	var input service.AddStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.inventory.AddStock(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

// GetHistory lists every restocking batch, newest first.
func (h *InventoryHandler) GetHistory(c *gin.Context) {
	batches, err := h.inventory.StockHistory(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

// GetCurrent reports on-hand quantities per SKU.
func (h *InventoryHandler) GetCurrent(c *gin.Context) {
	levels, err := h.inventory.CurrentStock(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// GetAvailable returns the on-hand quantity for one SKU, taken from the
// product_type and bottle_size query parameters.
func (h *InventoryHandler) GetAvailable(c *gin.Context) {
	sku := domain.SKU{
		ProductType: domain.ProductType(c.Query("product_type")),
		BottleSize:  domain.BottleSize(c.Query("bottle_size")),
	}

	quantity, err := h.inventory.AvailableStock(c.Request.Context(), sku)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sku": sku, "quantity": quantity})
}
