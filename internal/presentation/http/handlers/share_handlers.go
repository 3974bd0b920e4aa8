package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AtRiskMedia/microsite-go/internal/application/services"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/microsite-go/internal/presentation/http/middleware"
)

var shareUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ShareHandlers contains the share-link endpoints
type ShareHandlers struct {
	builderService *services.BuilderService
	broadcaster    *messaging.ShareBroadcaster
	logger         *logging.ChanneledLogger
}

// NewShareHandlers creates share handlers with injected dependencies
func NewShareHandlers(builderService *services.BuilderService, broadcaster *messaging.ShareBroadcaster, logger *logging.ChanneledLogger) *ShareHandlers {
	return &ShareHandlers{
		builderService: builderService,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// GetShareLink returns the current preview link for an instance
func (h *ShareHandlers) GetShareLink(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	link, err := h.builderService.ShareLink(templateID, instanceID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shareLink": link})
}

// LinkCopied records that the user copied the share link
func (h *ShareHandlers) LinkCopied(c *gin.Context) {
	templateID, instanceID, sessionID := requestScope(c)

	if err := h.builderService.TrackAction(templateID, instanceID, sessionID, footprint.ActionLinkCopy, nil); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracked": true})
}

// Live upgrades to a websocket and streams regenerated share links for the
// instance until the client disconnects.
func (h *ShareHandlers) Live(c *gin.Context) {
	instanceID := c.Param("instanceId")

	conn, err := shareUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Share().Warn("Share websocket upgrade failed",
			"instanceId", instanceID, "error", err.Error())
		return
	}

	client := &messaging.Client{
		Conn:       conn,
		InstanceID: instanceID,
		Send:       make(chan []byte, 8),
	}
	h.broadcaster.Register(client)
	go client.WritePump()

	h.logger.Share().Debug("Share subscriber attached",
		"instanceId", instanceID,
		"sessionId", logging.SanitizeSessionID(middleware.GetSessionID(c)))

	// Drain reads to detect disconnect; the client never sends payloads.
	go func() {
		defer h.broadcaster.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
