package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/presentation/http/middleware"
)

// SaveSectionRequest is the body for a section save; the content object
// replaces any previous edit wholesale.
type SaveSectionRequest struct {
	Content map[string]any `json:"content" binding:"required"`
}

// UpdateSiteRequest carries the scalar overrides; nil fields are untouched
type UpdateSiteRequest struct {
	SiteName   *string `json:"siteName"`
	BrandColor *string `json:"brandColor"`
	Logo       *string `json:"logo"`
}

// UpdateFormRequest carries the contact form values
type UpdateFormRequest struct {
	Form map[string]string `json:"form" binding:"required"`
}

// BuilderHandlers contains the builder state and editing endpoints
type BuilderHandlers struct {
	builderService   *services.BuilderService
	footprintService *services.FootprintService
	logger           *logging.ChanneledLogger
}

// NewBuilderHandlers creates builder handlers with injected dependencies
func NewBuilderHandlers(builderService *services.BuilderService, footprintService *services.FootprintService, logger *logging.ChanneledLogger) *BuilderHandlers {
	return &BuilderHandlers{
		builderService:   builderService,
		footprintService: footprintService,
		logger:           logger,
	}
}

func requestScope(c *gin.Context) (templateID, instanceID, sessionID string) {
	return c.Param("templateId"), c.Param("instanceId"), middleware.GetSessionID(c)
}

// GetState returns the full builder state for an instance
func (h *BuilderHandlers) GetState(c *gin.Context) {
	start := time.Now()
	templateID, instanceID, sessionID := requestScope(c)

	inst, err := h.builderService.Open(templateID, instanceID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	link, err := h.builderService.ShareLink(templateID, instanceID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Builder().Debug("Get builder state request completed",
		"templateId", templateID, "instanceId", instanceID, "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"state":           inst.State,
		"templateId":      inst.Snapshot.TemplateID,
		"siteName":        inst.Snapshot.SiteName,
		"brandColor":      inst.Snapshot.BrandColor,
		"logo":            inst.Snapshot.Logo,
		"sectionEdits":    inst.Snapshot.SectionEdits,
		"deletedSections": inst.Snapshot.DeletedSections,
		"form":            inst.Form,
		"shareLink":       link,
		"summary":         h.footprintService.Summary(instanceID, sessionID),
	})
}

// SaveSection stores the content for one section
func (h *BuilderHandlers) SaveSection(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	var req SaveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.builderService.SaveSection(templateID, instanceID, sessionID, c.Param("sectionId"), req.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": c.Param("sectionId")})
}

// DeleteSection hides a section without discarding its edits
func (h *BuilderHandlers) DeleteSection(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	if err := h.builderService.DeleteSection(templateID, instanceID, sessionID, c.Param("sectionId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("sectionId")})
}

// RestoreSection reveals a hidden section with its last-saved content
func (h *BuilderHandlers) RestoreSection(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	if err := h.builderService.RestoreSection(templateID, instanceID, sessionID, c.Param("sectionId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": c.Param("sectionId")})
}

// UpdateSite applies scalar overrides: site name, brand color, logo
func (h *BuilderHandlers) UpdateSite(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	var req UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SiteName != nil {
		if err := h.builderService.SetSiteName(templateID, instanceID, sessionID, *req.SiteName); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.BrandColor != nil {
		if err := h.builderService.SetBrandColor(templateID, instanceID, sessionID, *req.BrandColor); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Logo != nil {
		if err := h.builderService.SetLogo(templateID, instanceID, sessionID, *req.Logo); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// UpdateForm stores the contact form values
func (h *BuilderHandlers) UpdateForm(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.builderService.UpdateForm(templateID, instanceID, sessionID, req.Form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// Reset returns the instance to template defaults. The activity log survives.
func (h *BuilderHandlers) Reset(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	if err := h.builderService.Reset(templateID, instanceID, sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}
