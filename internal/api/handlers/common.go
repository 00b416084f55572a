package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// writeError maps service errors onto HTTP statuses: insufficient stock
// is a conflict, other validation rejections are bad requests, missing
// rows are 404s, everything else is a 500 with the detail kept in logs.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseDateQuery reads an optional YYYY-MM-DD date parameter, defaulting
// to the current local day.
func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, domain.Validationf("%s must be formatted YYYY-MM-DD", name)
	}
	return t, nil
}
