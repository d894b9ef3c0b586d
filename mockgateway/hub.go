package mockgateway

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/realtime"
)

type message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the connected channel subscribers and fans order events
// out to all of them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.New()
	}
	return &Hub{
		clients: map[*websocket.Conn]struct{}{},
		log:     log,
	}
}

// Register adds a connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) BroadcastOrderCreated(order models.Order) {
	h.broadcast(message{Event: realtime.EventOrderCreated, Data: order})
}

func (h *Hub) BroadcastOrderUpdated(order models.Order) {
	h.broadcast(message{Event: realtime.EventOrderUpdated, Data: order})
}

func (h *Hub) BroadcastOrderDeleted(order models.Order) {
	h.broadcast(message{Event: realtime.EventOrderDeleted, Data: order})
}

func (h *Hub) broadcast(msg message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Errorf("marshal broadcast message: %v", err)
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Warnf("dropping slow channel client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
