package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/media"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// ValidateMediaRequest asks whether a URL plausibly serves the given media kind
type ValidateMediaRequest struct {
	Kind    string `json:"kind" binding:"required,oneof=image video"`
	FieldID string `json:"fieldId" binding:"required"`
	URL     string `json:"url" binding:"required"`
}

// MediaHandlers contains the advisory media validation endpoint
type MediaHandlers struct {
	validationService *services.ValidationService
	logger            *logging.ChanneledLogger
}

// NewMediaHandlers creates media handlers with injected dependencies
func NewMediaHandlers(validationService *services.ValidationService, logger *logging.ChanneledLogger) *MediaHandlers {
	return &MediaHandlers{
		validationService: validationService,
		logger:            logger,
	}
}

// ValidateURL probes a media URL. The result is advisory: saves never gate
// on it, and a stale result (a newer check for the same field started) is
// flagged so the client can ignore it.
func (h *MediaHandlers) ValidateURL(c *gin.Context) {
	var req ValidateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.validationService.CheckMediaURL(c.Request.Context(), media.CheckKind(req.Kind), req.FieldID, req.URL)

	c.JSON(http.StatusOK, gin.H{
		"fieldId": result.FieldID,
		"valid":   result.Valid,
		"stale":   result.Stale,
	})
}
