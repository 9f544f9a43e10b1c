package api

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"lifeos/ports"

	"github.com/gin-gonic/gin"
)

// keepAliveInterval is how often an idle stream receives a ping
const keepAliveInterval = 30 * time.Second

// SSEHub fans change events out to dashboard clients over Server-Sent Events
type SSEHub struct {
	clients    map[chan ports.Event]bool
	clientsMu  sync.RWMutex
	register   chan chan ports.Event
	unregister chan chan ports.Event
	broadcast  chan ports.Event
	done       chan struct{}
	closeOnce  sync.Once
}

// NewSSEHub creates a hub and starts its dispatch loop
func NewSSEHub() *SSEHub {
	hub := &SSEHub{
		clients:    make(map[chan ports.Event]bool),
		register:   make(chan chan ports.Event, 10),
		unregister: make(chan chan ports.Event, 10),
		broadcast:  make(chan ports.Event, 100),
		done:       make(chan struct{}),
	}

	go hub.run()
	return hub
}

func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			log.Printf("[SSE] Client registered (total clients: %d)", len(h.clients))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if h.clients[client] {
				delete(h.clients, client)
				close(client)
				log.Printf("[SSE] Client unregistered (remaining clients: %d)", len(h.clients))
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			for client := range h.clients {
				select {
				case client <- event:
				default:
					log.Printf("[SSE] Client channel full, skipping %s", event.Type)
				}
			}
			h.clientsMu.RUnlock()

		case <-h.done:
			h.clientsMu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client)
			}
			h.clientsMu.Unlock()
			return
		}
	}
}

// Broadcast queues an event for every connected client. It never blocks.
func (h *SSEHub) Broadcast(event ports.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[SSE] Broadcast channel full, dropping event: %s", event.Type)
	}
}

// Close disconnects all clients and stops the dispatch loop
func (h *SSEHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *SSEHub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// HandleSSE streams events until the client disconnects
func (h *SSEHub) HandleSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	client := make(chan ports.Event, 10)
	select {
	case h.register <- client:
	default:
		c.JSON(503, gin.H{"error": "event stream unavailable"})
		return
	}

	defer func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-client:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("[SSE] Failed to marshal event: %v", err)
				return true
			}
			c.SSEvent(event.Type, string(payload))
			return true

		case <-time.After(keepAliveInterval):
			c.SSEvent("ping", `{"status":"alive","timestamp":"`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			return false
		}
	})
}
