package ws

import (
	"log"
	"sync"

	"message-hub/internal/models"
)

// Sender is the transport-side half of a connection: anything that can take
// a marshaled frame. Delivery is fire-and-forget; a Sender must never block.
type Sender interface {
	Send(payload []byte)
}

// Hub is the broadcast engine: the registry of open connections and the
// fan-out rules for delivering an event to all of them, all but one, or
// exactly one.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Sender
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]Sender)}
}

// Register adds a connection to the hub.
func (h *Hub) Register(connID string, s Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connID] = s
}

// Unregister removes a connection. Unknown IDs are a no-op.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connID)
}

// ConnCount returns the number of open connections.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// ToAll delivers an event frame to every open connection.
func (h *Hub) ToAll(event string, data any) {
	payload, err := models.EncodeFrame(event, data)
	if err != nil {
		log.Printf("ws: encode %s frame: %v", event, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.conns {
		s.Send(payload)
	}
}

// ToOthers delivers an event frame to every open connection except origin.
func (h *Hub) ToOthers(origin, event string, data any) {
	payload, err := models.EncodeFrame(event, data)
	if err != nil {
		log.Printf("ws: encode %s frame: %v", event, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, s := range h.conns {
		if id == origin {
			continue
		}
		s.Send(payload)
	}
}

// ToOne delivers an event frame to a single connection, if still open.
func (h *Hub) ToOne(connID, event string, data any) {
	payload, err := models.EncodeFrame(event, data)
	if err != nil {
		log.Printf("ws: encode %s frame: %v", event, err)
		return
	}
	// Delivery happens under the lock so the sender cannot be torn down
	// between the lookup and the Send.
	h.mu.RLock()
	defer h.mu.RUnlock()
	if s, ok := h.conns[connID]; ok {
		s.Send(payload)
	}
}
