package handlers

import (
	"net/http"
	"time"

	"github.com/aquatrack/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct {
	deliveries *service.DeliveryService
}

func NewDeliveryHandler(deliveries *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

// UploadRecord accepts a multipart form with an image file plus optional
// notes and stores a delivery record with a fixed expiry.
func (h *DeliveryHandler) UploadRecord(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	notes := c.PostForm("notes")

	record, err := h.deliveries.CreateRecord(c.Request.Context(), fileHeader.Filename, contentType, file, fileHeader.Size, notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *DeliveryHandler) ListRecords(c *gin.Context) {
	records, err := h.deliveries.ListRecords(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Cleanup deletes every expired delivery record and its image. The route
// is unauthenticated so an external scheduler can hit it; running it
// twice in a row is harmless.
func (h *DeliveryHandler) Cleanup(c *gin.Context) {
	result, err := h.deliveries.Sweep(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
