// Package notify fans change events out to live subscribers.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/internal/metrics"
)

// EventUpdate is the only event type pushed to subscribers.
const EventUpdate = "update"

// Update is the payload of an update event.
type Update struct {
	Type      ingest.Source `json:"type"`
	Data      any           `json:"data"`
	Timestamp time.Time     `json:"timestamp"`
}

// Message is one frame on the live channel.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client is a single subscriber. Its Send channel is closed when the hub
// drops it.
type Client struct {
	ID   string
	send chan Message
}

// Send returns the subscriber's outbound queue.
func (c *Client) Send() <-chan Message { return c.send }

// Hub tracks subscribers and broadcasts to them. Delivery is best effort: a
// subscriber whose queue is full is disconnected.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	queueSize int
	now       func() time.Time
	log       *zap.Logger
}

// NewHub creates a hub. Call Run to start delivering.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		queueSize:  256,
		now:        time.Now,
		log:        log,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			metrics.LiveClients.Set(0)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			metrics.LiveClients.Set(float64(n))
			h.log.Debug("live client connected", zap.String("client", c.ID), zap.Int("clients", n))

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			var slow []*Client
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				h.log.Warn("dropping slow live client", zap.String("client", c.ID))
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		metrics.LiveClients.Set(float64(n))
		h.log.Debug("live client disconnected", zap.String("client", c.ID), zap.Int("clients", n))
	}
}

// Register adds a new subscriber. It returns nil once the hub has stopped.
func (h *Hub) Register() *Client {
	c := &Client{ID: uuid.NewString(), send: make(chan Message, h.queueSize)}
	select {
	case h.register <- c:
		return c
	case <-h.done:
		return nil
	}
}

// Unregister removes a subscriber. Unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues an update event for every subscriber. It never blocks;
// the event is dropped when the hub is backlogged.
func (h *Hub) Broadcast(source ingest.Source, data any) {
	msg := Message{
		Event: EventUpdate,
		Data:  Update{Type: source, Data: data, Timestamp: h.now().UTC()},
	}
	select {
	case h.broadcast <- msg:
		metrics.BroadcastsTotal.WithLabelValues(string(source)).Inc()
	default:
		h.log.Warn("broadcast queue full, dropping update", zap.String("type", string(source)))
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
