// Package realtime fans order events out to websocket subscribers. Customers
// join the room of their order, staff join a shared admin room. Delivery is
// best-effort and at-most-once; a subscriber that cannot keep up is dropped
// rather than blocking the publisher.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/ports"
)

// StaffRoom is the room staff clients join for reminder alerts.
const StaffRoom = "staff"

// OrderRoom returns the room name for one order's subscribers.
func OrderRoom(orderID kernel.UUID) string {
	return "order:" + orderID.String()
}

// Event types on the wire.
const (
	EventStatusChanged   = "status-changed"
	EventLocationChanged = "location-changed"
	EventReminderDue     = "reminder-due"
)

// envelope is the wire format of every event.
type envelope struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type statusChangedPayload struct {
	OrderID string            `json:"orderId"`
	Ref     string            `json:"ref"`
	Status  string            `json:"status"`
	Patch   statusChangePatch `json:"patch"`
}

// statusChangePatch is the partial order view clients merge into their local
// copy without refetching.
type statusChangePatch struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type locationChangedPayload struct {
	OrderID     string    `json:"orderId"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	LastUpdated time.Time `json:"lastUpdated"`
	DriverName  string    `json:"driverName"`
}

type reminderDuePayload struct {
	OrderID    string `json:"orderId"`
	Ref        string `json:"ref"`
	ShownCount int    `json:"shownCount"`
}

// Hub tracks room membership and broadcasts events. It implements the
// EventPublisher port for the command handlers.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger.With("component", "realtime"),
	}
}

// join registers the client in its room. Called by Client on start.
func (h *Hub) join(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[client.room]
	if room == nil {
		room = make(map[*Client]struct{})
		h.rooms[client.room] = room
	}
	room[client] = struct{}{}
}

// leave removes the client from its room and closes its send channel.
// Safe to call more than once.
func (h *Hub) leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

func (h *Hub) dropLocked(client *Client) {
	room, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.room)
	}
	close(client.send)
}

// RoomSize reports the current number of subscribers in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// publish marshals the event and hands it to every subscriber of the room.
// Subscribers whose send buffer is full are dropped.
func (h *Hub) publish(room, eventType string, data any) {
	message, err := json.Marshal(envelope{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		h.logger.Error("marshal event", "type", eventType, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- message:
		default:
			h.logger.Warn("dropping slow subscriber", "room", room)
			h.dropLocked(client)
		}
	}
}

// PublishStatusChanged broadcasts a status transition to the order's room.
func (h *Hub) PublishStatusChanged(event ports.OrderStatusChangedEvent) {
	h.publish(OrderRoom(event.OrderID), EventStatusChanged, statusChangedPayload{
		OrderID: event.OrderID.String(),
		Ref:     event.Ref,
		Status:  event.Status.String(),
		Patch: statusChangePatch{
			Status:    event.Status.String(),
			UpdatedAt: event.ChangedAt,
		},
	})
}

// PublishLocationChanged broadcasts a driver fix to the order's room.
func (h *Hub) PublishLocationChanged(event ports.DriverLocationChangedEvent) {
	h.publish(OrderRoom(event.OrderID), EventLocationChanged, locationChangedPayload{
		OrderID:     event.OrderID.String(),
		Latitude:    event.Latitude,
		Longitude:   event.Longitude,
		LastUpdated: event.LastUpdated,
		DriverName:  event.DriverName,
	})
}

// PublishReminderDue broadcasts a reminder alert to the staff room.
func (h *Hub) PublishReminderDue(event ports.ReminderDueEvent) {
	h.publish(StaffRoom, EventReminderDue, reminderDuePayload{
		OrderID:    event.OrderID.String(),
		Ref:        event.Ref,
		ShownCount: event.ShownCount,
	})
}
