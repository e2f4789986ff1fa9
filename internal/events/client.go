package events

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Send pings at this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Buffer size for outgoing messages
	sendBufferSize = 64

	// Clients never send payloads, only control frames
	maxMessageSize = 512
)

// Client is a websocket subscriber to session events
type Client struct {
	conn        *websocket.Conn
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a Client around an upgraded connection
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// Upgrader is shared by every events endpoint
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// ServeWS upgrades the request and streams hub messages to it until either side closes.
// initial, if non-nil, is sent before any broadcast.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, initial []byte, logger *slog.Logger) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response
		logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := NewClient(conn)
	if initial != nil {
		client.send <- initial
	}
	if !hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.readPump(hub)
	client.writePump()
}

// readPump discards incoming frames and unregisters the client when the peer goes away
func (c *Client) readPump(hub *Hub) {
	defer hub.Unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump owns all writes to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
