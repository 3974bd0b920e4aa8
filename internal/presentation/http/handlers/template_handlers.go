package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// TemplateHandlers contains the catalog read endpoints
type TemplateHandlers struct {
	templateService *services.TemplateService
	logger          *logging.ChanneledLogger
}

// NewTemplateHandlers creates template handlers with injected dependencies
func NewTemplateHandlers(templateService *services.TemplateService, logger *logging.ChanneledLogger) *TemplateHandlers {
	return &TemplateHandlers{
		templateService: templateService,
		logger:          logger,
	}
}

// ListTemplates returns the full template catalog
func (h *TemplateHandlers) ListTemplates(c *gin.Context) {
	start := time.Now()
	templates := h.templateService.List()

	h.logger.Catalog().Debug("List templates request completed",
		"count", len(templates), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// GetTemplate returns one template by id
func (h *TemplateHandlers) GetTemplate(c *gin.Context) {
	tmpl, err := h.templateService.Resolve(c.Param("templateId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}
