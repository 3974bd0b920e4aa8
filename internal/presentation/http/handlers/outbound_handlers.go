package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// BuildRequestBody is the client payload for a "build my site" submission
type BuildRequestBody struct {
	ContactName  string `json:"contactName" binding:"required"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

// WhatsAppBody optionally overrides the recipient phone number
type WhatsAppBody struct {
	Phone string `json:"phone"`
}

// OutboundHandlers contains the build-request and WhatsApp endpoints
type OutboundHandlers struct {
	builderService  *services.BuilderService
	outboundService *services.OutboundService
	logger          *logging.ChanneledLogger
}

// NewOutboundHandlers creates outbound handlers with injected dependencies
func NewOutboundHandlers(builderService *services.BuilderService, outboundService *services.OutboundService, logger *logging.ChanneledLogger) *OutboundHandlers {
	return &OutboundHandlers{
		builderService:  builderService,
		outboundService: outboundService,
		logger:          logger,
	}
}

// SendBuildRequest composes and dispatches the build request for an instance.
// A failed dispatch returns the composed request so the client can retry
// without losing anything the user entered.
func (h *OutboundHandlers) SendBuildRequest(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	var body BuildRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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

	req := h.outboundService.ComposeBuildRequest(
		body.ContactName, body.ContactEmail, body.ContactPhone,
		inst.Template.Name, inst.Snapshot.SiteName, inst.Snapshot.BrandColor,
		body.Notes, link,
	)

	if err := h.outboundService.SendBuildRequest(req); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "build request could not be sent, please retry",
			"request":   req,
			"retryable": true,
		})
		return
	}

	h.builderService.TrackAction(templateID, instanceID, sessionID, footprint.ActionBuildRequest, map[string]any{
		"requestId": req.RequestID,
	})

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// WhatsAppShare returns a wa.me deep link for the current share link
func (h *OutboundHandlers) WhatsAppShare(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	var body WhatsAppBody
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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

	waLink := h.outboundService.WhatsAppLink(body.Phone, inst.Snapshot.SiteName, link)

	h.builderService.TrackAction(templateID, instanceID, sessionID, footprint.ActionWhatsAppShare, nil)

	c.JSON(http.StatusOK, gin.H{"whatsappLink": waLink})
}
