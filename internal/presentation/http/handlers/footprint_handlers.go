package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/presentation/http/middleware"
)

// FootprintHandlers contains the activity log endpoints
type FootprintHandlers struct {
	footprintService *services.FootprintService
	logger           *logging.ChanneledLogger
}

// NewFootprintHandlers creates footprint handlers with injected dependencies
func NewFootprintHandlers(footprintService *services.FootprintService, logger *logging.ChanneledLogger) *FootprintHandlers {
	return &FootprintHandlers{
		footprintService: footprintService,
		logger:           logger,
	}
}

// footprintView decorates an entry with its display strings
type footprintView struct {
	footprint.Entry
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	RelativeTime string `json:"relativeTime"`
}

// GetFootprints returns the activity log, most recent first, with the
// computed summary.
func (h *FootprintHandlers) GetFootprints(c *gin.Context) {
	instanceID := c.Param("instanceId")
	sessionID := middleware.GetSessionID(c)

	entries := h.footprintService.GetAll(instanceID)
	views := make([]footprintView, len(entries))
	for i, entry := range entries {
		views[i] = footprintView{
			Entry:        entry,
			Description:  footprint.DescribeAction(entry.Kind, entry),
			Icon:         footprint.IconFor(entry.Kind),
			RelativeTime: footprint.FormatRelativeTime(entry.Timestamp),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"footprints": views,
		"summary":    h.footprintService.Summary(instanceID, sessionID),
	})
}

// ClearFootprints empties the activity log for an instance
func (h *FootprintHandlers) ClearFootprints(c *gin.Context) {
	instanceID := c.Param("instanceId")
	h.footprintService.Clear(instanceID)

	h.logger.Footprint().Info("Footprint log cleared", "instanceId", instanceID)
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
