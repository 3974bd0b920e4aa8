package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/presentation/http/middleware"
)

// PreviewHandlers contains the public preview surface
type PreviewHandlers struct {
	previewService *services.PreviewService
	logger         *logging.ChanneledLogger
}

// NewPreviewHandlers creates preview handlers with injected dependencies
func NewPreviewHandlers(previewService *services.PreviewService, logger *logging.ChanneledLogger) *PreviewHandlers {
	return &PreviewHandlers{
		previewService: previewService,
		logger:         logger,
	}
}

// Open renders a shared snapshot. An unknown template is a 404; a payload
// that does not decode is a 422, never a crash.
func (h *PreviewHandlers) Open(c *gin.Context) {
	view, err := h.previewService.Open(
		c.Param("templateId"),
		c.Param("payload"),
		c.Query("instanceId"),
		middleware.GetSessionID(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
