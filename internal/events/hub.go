package events

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/scorepad/internal/model"
)

// outboundBufferSize bounds events waiting for Run
const outboundBufferSize = 256

// Hub fans session events out to connected websocket clients.
// Run owns the client set; the mutex only guards reads from ClientCount.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}

	joins    chan *Client
	leaves   chan *Client
	outbound chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates a Hub; nothing is delivered until Run is started
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With(slog.String("component", "events")),
		clients:  make(map[*Client]struct{}),
		joins:    make(chan *Client),
		leaves:   make(chan *Client),
		outbound: make(chan []byte, outboundBufferSize),
		done:     make(chan struct{}),
	}
}

// Run delivers messages until Close is called
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.joins:
			h.add(c)
		case c := <-h.leaves:
			h.remove(c)
		case msg := <-h.outbound:
			h.fanOut(msg)
		case <-h.done:
			h.disconnectAll()
			return
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("subscriber joined", slog.Int("subscribers", n))
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("subscriber left",
		slog.Duration("connected_for", time.Since(c.connectedAt)),
		slog.Int("subscribers", n),
	)
}

// fanOut never blocks; a subscriber with a full buffer misses the message
func (h *Hub) fanOut(msg []byte) {
	h.mu.RLock()
	missed := 0
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			missed++
		}
	}
	total := len(h.clients)
	h.mu.RUnlock()

	if missed > 0 {
		h.logger.Warn("slow subscribers missed an event",
			slog.Int("missed", missed),
			slog.Int("subscribers", total),
		)
	}
}

func (h *Hub) disconnectAll() {
	h.mu.Lock()
	n := len(h.clients)
	for c := range h.clients {
		close(c.send)
	}
	clear(h.clients)
	h.mu.Unlock()

	h.logger.Info("event hub stopped", slog.Int("disconnected", n))
}

// Register adds a client; it reports false once the hub is closed
func (h *Hub) Register(client *Client) bool {
	select {
	case h.joins <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client and closes its send channel
func (h *Hub) Unregister(client *Client) {
	select {
	case h.leaves <- client:
	case <-h.done:
	}
}

// Broadcast queues a raw message for every client without blocking the caller
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.outbound <- message:
	default:
		h.logger.Warn("event hub backlog full, message discarded")
	}
}

// Publish encodes a session event and broadcasts it
func (h *Hub) Publish(event model.SessionEvent) {
	data, err := encodeEvent(event)
	if err != nil {
		h.logger.Error("failed to encode session event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	h.Broadcast(data)
}

// Close shuts down the hub and disconnects every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Snapshot encodes the current session as the first message for a new subscriber
func Snapshot(game *model.Game, totals []float64) ([]byte, error) {
	return encodeEvent(model.SessionEvent{
		Type:   model.EventSessionSnapshot,
		Game:   game,
		Totals: totals,
	})
}

func encodeEvent(event model.SessionEvent) ([]byte, error) {
	if event.Totals == nil {
		event.Totals = []float64{}
	}
	return json.Marshal(event)
}
