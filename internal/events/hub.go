package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is what the back-office receives over the websocket feed.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
}

const (
	TypeOrderCreated = "order_created"
	TypeLowStock     = "low_stock"
)

// Hub fans events out to connected admin sessions. One connection per admin;
// a new connection replaces the old one.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(adminID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[adminID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[adminID] = conn
}

func (h *Hub) Unregister(adminID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[adminID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, adminID)
	}
}

// Broadcast pushes an event to every connected admin. Dead connections are
// dropped on write failure.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	event := Event{Type: eventType, Payload: payload, CreatedAt: time.Now()}

	h.mutex.RLock()
	ids := make([]int64, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mutex.RUnlock()

	for _, id := range ids {
		h.mutex.RLock()
		conn, exists := h.connections[id]
		h.mutex.RUnlock()
		if !exists || conn == nil {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
