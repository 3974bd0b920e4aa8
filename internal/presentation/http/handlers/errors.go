// Package handlers provides HTTP handlers for the builder API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/share"
)

// respondError maps domain errors onto HTTP status codes. Not-found and
// malformed-payload stay distinct so clients can render the right page.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
	case errors.Is(err, services.ErrSectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
	case errors.Is(err, share.ErrMalformedPayload):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid or corrupted link"})
	case errors.Is(err, services.ErrBuilderNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": "builder instance is not ready"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
