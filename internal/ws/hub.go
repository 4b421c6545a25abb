package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Hub fans stock-update events out to connected websocket clients.
// Events are published after a transaction commits, never inside it.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

// StockUpdate is the payload pushed to subscribers whenever a product's
// quantity changes.
type StockUpdate struct {
	Type      string `json:"type"`   // always "stock_update"
	Action    string `json:"action"` // e.g. "stock_in_created", "stock_out_deleted"
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"` // quantity after the change
	Actor     string `json:"actor,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// Publish serializes a stock update and hands it to the broadcast loop.
// Safe to call from any goroutine; a nil hub is a no-op so the engine can
// run without realtime subscribers (tests, CLI tools).
func (h *Hub) Publish(update StockUpdate) {
	if h == nil {
		return
	}
	update.Type = "stock_update"
	msg, err := json.Marshal(update)
	if err != nil {
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
