package notification

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event is the payload pushed to admin panels when the agenda changes.
type Event struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Service   string `json:"service,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message"`
	At        string `json:"at"`
}

const (
	EventBookingCreated = "booking_created"
	EventBookingStatus  = "booking_status"
	EventBookingDeleted = "booking_deleted"
)

// client pairs a connection with the mutex that serializes writes to it.
// gorilla/websocket allows at most one concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) send(ev Event) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	return c.conn.WriteJSON(ev)
}

// Hub fans booking events out to every connected admin panel.
type Hub struct {
	connections map[*websocket.Conn]*client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*client),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[conn] = &client{conn: conn}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// Broadcast sends the event to every panel. Writes to one connection are
// serialized through its client mutex; connections that fail the write
// are dropped.
func (h *Hub) Broadcast(ev Event) {
	if ev.At == "" {
		ev.At = time.Now().Format(time.RFC3339)
	}

	h.mutex.RLock()
	clients := make([]*client, 0, len(h.connections))
	for _, c := range h.connections {
		clients = append(clients, c)
	}
	h.mutex.RUnlock()

	for _, c := range clients {
		if err := c.send(ev); err != nil {
			log.Debug().Err(err).Msg("dropping stale notification connection")
			h.Unregister(c.conn)
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

	for c := range h.connections {
		_ = c.Close()
		delete(h.connections, c)
	}
}
