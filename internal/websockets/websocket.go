package websockets

import (
	"time"

	"masshouse/config"
	"masshouse/internal/database"
	"masshouse/internal/events"
	"masshouse/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_REQUEST_SUBMITTED = "request_submitted"
	MESSAGE_TYPE_STATUS_CHANGED    = "status_changed"

	PING_INTERVAL     = 30 * time.Second
	PONG_TIMEOUT      = 60 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	MAX_MESSAGE_SIZE  = 4 * 1024
	SEND_CHANNEL_SIZE = 64
)

// Message is the frame pushed to connected admin dashboards.
type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Client struct {
	ID         string
	AdminEmail string
	Connection *websocket.Conn
	Manager    *Manager
	send       chan Message
}

// Manager runs the admin live feed. Connections are authenticated before the
// upgrade via a token query parameter, so every registered client is already
// an admin.
type Manager struct {
	hub         *Hub
	db          database.DB
	config      config.Config
	log         logger.Logger
	eventBus    *events.EventBus
	authService *services.AuthService
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	authService *services.AuthService,
	config config.Config,
) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub: &Hub{
			broadcast:  make(chan Message),
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		db:          db,
		config:      config,
		log:         log,
		eventBus:    eventBus,
		authService: authService,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	if err := manager.subscribeToRequestEvents(); err != nil {
		return nil, err
	}

	return manager, nil
}

// Authenticate validates the token supplied on the upgrade request. Called by
// the route handler before the connection is upgraded.
func (m *Manager) Authenticate(token string) (*services.AdminClaims, error) {
	return m.authService.ValidateAdminToken(token)
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	adminEmail, _ := c.Locals("adminEmail").(string)

	client := &Client{
		ID:         uuid.New().String(),
		AdminEmail: adminEmail,
		Connection: c,
		Manager:    m,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	m.hub.register <- client
	defer func() {
		m.hub.unregister <- client
		if err := c.Close(); err != nil {
			log.Er("failed to close connection", err, "clientID", client.ID)
		}
	}()

	go client.readPump()
	client.writePump()
}

func (m *Manager) subscribeToRequestEvents() error {
	return m.eventBus.Subscribe(events.REQUESTS_CHANNEL, func(event events.RequestEvent) error {
		m.BroadcastMessage(Message{
			ID:   event.ID,
			Type: string(event.Type),
			Data: map[string]any{
				"kind":      event.Kind,
				"requestId": event.RequestID,
				"reference": event.Reference,
				"status":    event.Status,
			},
			Timestamp: event.OccurredAt,
		})
		return nil
	})
}

func (m *Manager) BroadcastMessage(message Message) {
	log := m.log.Function("BroadcastMessage")

	select {
	case m.hub.broadcast <- message:
	default:
		log.Warn("Broadcast channel is full, dropping message", "messageID", message.ID)
	}
}

// readPump drains inbound frames. The feed is one-way; anything the client
// sends besides pongs is discarded, but reading is required to process
// control frames and detect disconnects.
func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			log.Er("failed to set read deadline in pong handler", err, "clientID", c.ID)
		}
		return nil
	})

	for {
		if _, _, err := c.Connection.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				log.Er("unexpected close", err, "clientID", c.ID)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
				return
			}

			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("failed to write message", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
				return
			}

			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
