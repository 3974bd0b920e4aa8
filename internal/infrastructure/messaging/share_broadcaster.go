// Package messaging pushes regenerated share links to connected builder
// clients over websockets, so the link shown in the UI always reflects the
// current state after the debounce window closes.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
)

// ShareUpdate is the message sent to subscribers when a link is regenerated
type ShareUpdate struct {
	InstanceID string    `json:"instanceId"`
	ShareURL   string    `json:"shareUrl"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Client is one connected builder tab subscribed to an instance
type Client struct {
	Conn       *websocket.Conn
	InstanceID string
	Send       chan []byte
}

// ShareBroadcaster fans share-link updates out to subscribed clients
type ShareBroadcaster struct {
	instanceClients map[string]map[*Client]bool
	register        chan *Client
	unregister      chan *Client
	updates         chan ShareUpdate
	logger          *logging.ChanneledLogger
	mu              sync.RWMutex
}

// NewShareBroadcaster creates a broadcaster; call Run in a goroutine
func NewShareBroadcaster(logger *logging.ChanneledLogger) *ShareBroadcaster {
	return &ShareBroadcaster{
		instanceClients: make(map[string]map[*Client]bool),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		updates:         make(chan ShareUpdate, 16),
		logger:          logger,
	}
}

// Register subscribes a client to share updates for its instance
func (b *ShareBroadcaster) Register(client *Client) {
	b.register <- client
}

// Unregister removes a client and closes its send channel
func (b *ShareBroadcaster) Unregister(client *Client) {
	b.unregister <- client
}

// Publish queues a share update for delivery. Never blocks the caller: when
// the queue is full the update is dropped, since a fresher one follows.
func (b *ShareBroadcaster) Publish(update ShareUpdate) {
	select {
	case b.updates <- update:
	default:
		if b.logger != nil {
			b.logger.Share().Warn("Share update queue full, dropping update",
				"instanceId", update.InstanceID)
		}
	}
}

// SubscriberCount returns how many clients are watching an instance
func (b *ShareBroadcaster) SubscriberCount(instanceID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.instanceClients[instanceID])
}

// Run is the broadcaster's main loop; stops when stop is closed
func (b *ShareBroadcaster) Run(stop <-chan struct{}) {
	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			if _, ok := b.instanceClients[client.InstanceID]; !ok {
				b.instanceClients[client.InstanceID] = make(map[*Client]bool)
			}
			b.instanceClients[client.InstanceID][client] = true
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.Share().Debug("Share subscriber connected",
					"instanceId", client.InstanceID,
					"subscribers", b.SubscriberCount(client.InstanceID))
			}

		case client := <-b.unregister:
			b.mu.Lock()
			if clients, ok := b.instanceClients[client.InstanceID]; ok {
				if _, present := clients[client]; present {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(b.instanceClients, client.InstanceID)
					}
				}
			}
			b.mu.Unlock()

		case update := <-b.updates:
			payload, err := json.Marshal(update)
			if err != nil {
				continue
			}
			b.mu.RLock()
			for client := range b.instanceClients[update.InstanceID] {
				select {
				case client.Send <- payload:
				default:
					// Slow client; skip rather than stall the loop.
				}
			}
			b.mu.RUnlock()

		case <-stop:
			b.mu.Lock()
			for _, clients := range b.instanceClients {
				for client := range clients {
					close(client.Send)
				}
			}
			b.instanceClients = make(map[string]map[*Client]bool)
			b.mu.Unlock()
			return
		}
	}
}

// WritePump forwards queued messages to the websocket until the channel closes
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
