package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/logger"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"github.com/gorilla/websocket"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSeatsTaken MessageType = "seats_taken"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType    `json:"type"`
	FlightID  int64          `json:"flight_id"`
	Places    []models.Place `json:"places,omitempty"`
	OrderID   int64          `json:"order_id,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	flightID int64
}

// Hub fans seat updates out to the clients watching each flight
type Hub struct {
	clients    map[int64]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	mu         sync.RWMutex
	log        logger.Logger
	now        func() time.Time
}

// NewHub creates a new Hub. Call Run to start it.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		log:        log,
		now:        time.Now,
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled and closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for flightID, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, flightID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightID] == nil {
				h.clients[client.flightID] = make(map[*Client]bool)
			}
			h.clients[client.flightID][client] = true
			total := len(h.clients[client.flightID])
			h.mu.Unlock()
			h.log.Debug("websocket client registered", "flight_id", client.flightID, "total", total)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.log.Error("failed to marshal websocket message", "error", err)
				continue
			}

			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients[message.FlightID]))
			for client := range h.clients[message.FlightID] {
				targets = append(targets, client)
			}
			h.mu.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- data:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.flightID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.flightID)
	}
	h.log.Debug("websocket client unregistered", "flight_id", client.flightID, "remaining", len(clients))
}

// BroadcastSeatsTaken tells everyone watching the flight that the seats were
// sold. It never blocks; when the queue is full the update is dropped.
func (h *Hub) BroadcastSeatsTaken(flightID, orderID int64, places []models.Place) {
	msg := &Message{
		Type:      MessageTypeSeatsTaken,
		FlightID:  flightID,
		OrderID:   orderID,
		Places:    places,
		Timestamp: h.now().UnixMilli(),
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("websocket broadcast queue full, dropping update", "flight_id", flightID)
	}
}

// ClientCount returns the number of clients watching a flight
func (h *Hub) ClientCount(flightID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightID])
}
