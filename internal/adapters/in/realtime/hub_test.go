package realtime_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/adapters/in/realtime"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/ports"
)

var upgrader = websocket.Upgrader{}

// hubServer upgrades every request and joins the connection to the room
// given in the path, mirroring how the HTTP layer mounts the hub.
func hubServer(t *testing.T, hub *realtime.Hub) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		room := strings.TrimPrefix(r.URL.Path, "/")
		hub.HandleConnection(conn, room)
	}))
	t.Cleanup(server.Close)
	return server
}

func dialRoom(t *testing.T, server *httptest.Server, room string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/" + room
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *realtime.Hub, room string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.RoomSize(room) != want {
		if time.Now().After(deadline) {
			t.Fatalf("room %s never reached %d subscribers", room, want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Type      string          `json:"type"`
		Timestamp time.Time       `json:"timestamp"`
		Data      json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(message, &envelope))
	assert.False(t, envelope.Timestamp.IsZero())
	return envelope.Type, envelope.Data
}

func newTestHub() *realtime.Hub {
	return realtime.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishStatusChanged_ReachesOrderRoom(t *testing.T) {
	hub := newTestHub()
	server := hubServer(t, hub)

	orderID := kernel.NewUUID()
	room := realtime.OrderRoom(orderID)
	conn := dialRoom(t, server, room)
	waitForSubscribers(t, hub, room, 1)

	changedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	hub.PublishStatusChanged(ports.OrderStatusChangedEvent{
		OrderID:   orderID,
		Ref:       "ORD-1A2B3C4D",
		Status:    order.OnTheWay,
		ChangedAt: changedAt,
	})

	eventType, data := readEnvelope(t, conn)
	assert.Equal(t, realtime.EventStatusChanged, eventType)

	var payload struct {
		OrderID string `json:"orderId"`
		Ref     string `json:"ref"`
		Status  string `json:"status"`
		Patch   struct {
			Status    string    `json:"status"`
			UpdatedAt time.Time `json:"updatedAt"`
		} `json:"patch"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, orderID.String(), payload.OrderID)
	assert.Equal(t, "ORD-1A2B3C4D", payload.Ref)
	assert.Equal(t, "on_the_way", payload.Status)
	assert.Equal(t, "on_the_way", payload.Patch.Status)
	assert.True(t, payload.Patch.UpdatedAt.Equal(changedAt))
}

func TestPublishLocationChanged_OnlyReachesItsRoom(t *testing.T) {
	hub := newTestHub()
	server := hubServer(t, hub)

	orderID := kernel.NewUUID()
	otherID := kernel.NewUUID()
	conn := dialRoom(t, server, realtime.OrderRoom(orderID))
	otherConn := dialRoom(t, server, realtime.OrderRoom(otherID))
	waitForSubscribers(t, hub, realtime.OrderRoom(orderID), 1)
	waitForSubscribers(t, hub, realtime.OrderRoom(otherID), 1)

	lastUpdated := time.Date(2026, 8, 28, 12, 5, 0, 0, time.UTC)
	hub.PublishLocationChanged(ports.DriverLocationChangedEvent{
		OrderID:     orderID,
		Latitude:    52.515,
		Longitude:   13.43,
		LastUpdated: lastUpdated,
		DriverName:  "Alex Schmidt",
	})

	eventType, data := readEnvelope(t, conn)
	assert.Equal(t, realtime.EventLocationChanged, eventType)

	var payload struct {
		OrderID     string    `json:"orderId"`
		Latitude    float64   `json:"latitude"`
		Longitude   float64   `json:"longitude"`
		LastUpdated time.Time `json:"lastUpdated"`
		DriverName  string    `json:"driverName"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.InDelta(t, 52.515, payload.Latitude, 1e-9)
	assert.InDelta(t, 13.43, payload.Longitude, 1e-9)
	assert.Equal(t, "Alex Schmidt", payload.DriverName)
	assert.True(t, payload.LastUpdated.Equal(lastUpdated))

	require.NoError(t, otherConn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := otherConn.ReadMessage()
	require.Error(t, err)
}

func TestPublishReminderDue_ReachesStaffRoom(t *testing.T) {
	hub := newTestHub()
	server := hubServer(t, hub)

	conn := dialRoom(t, server, realtime.StaffRoom)
	waitForSubscribers(t, hub, realtime.StaffRoom, 1)

	orderID := kernel.NewUUID()
	hub.PublishReminderDue(ports.ReminderDueEvent{
		OrderID:    orderID,
		Ref:        "ORD-AA11BB22",
		ShownCount: 2,
	})

	eventType, data := readEnvelope(t, conn)
	assert.Equal(t, realtime.EventReminderDue, eventType)

	var payload struct {
		OrderID    string `json:"orderId"`
		Ref        string `json:"ref"`
		ShownCount int    `json:"shownCount"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, orderID.String(), payload.OrderID)
	assert.Equal(t, "ORD-AA11BB22", payload.Ref)
	assert.Equal(t, 2, payload.ShownCount)
}

func TestSubscriberReceivesEventsInPublishOrder(t *testing.T) {
	hub := newTestHub()
	server := hubServer(t, hub)

	orderID := kernel.NewUUID()
	room := realtime.OrderRoom(orderID)
	conn := dialRoom(t, server, room)
	waitForSubscribers(t, hub, room, 1)

	statuses := []order.Status{order.Accepted, order.Preparing, order.OnTheWay, order.Delivered}
	for _, status := range statuses {
		hub.PublishStatusChanged(ports.OrderStatusChangedEvent{
			OrderID:   orderID,
			Ref:       "ORD-1A2B3C4D",
			Status:    status,
			ChangedAt: time.Now().UTC(),
		})
	}

	for _, want := range statuses {
		_, data := readEnvelope(t, conn)
		var payload struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, want.String(), payload.Status)
	}
}

func TestDisconnectLeavesRoom(t *testing.T) {
	hub := newTestHub()
	server := hubServer(t, hub)

	orderID := kernel.NewUUID()
	room := realtime.OrderRoom(orderID)
	conn := dialRoom(t, server, room)
	waitForSubscribers(t, hub, room, 1)

	conn.Close()
	waitForSubscribers(t, hub, room, 0)

	// Publishing into an empty room must not panic or block.
	hub.PublishStatusChanged(ports.OrderStatusChangedEvent{
		OrderID:   orderID,
		Ref:       "ORD-1A2B3C4D",
		Status:    order.Accepted,
		ChangedAt: time.Now().UTC(),
	})
}

func TestMultipleSubscribersShareRoom(t *testing.T) {
	hub := newTestHub()
	server := hubServer(t, hub)

	orderID := kernel.NewUUID()
	room := realtime.OrderRoom(orderID)
	first := dialRoom(t, server, room)
	second := dialRoom(t, server, room)
	waitForSubscribers(t, hub, room, 2)

	hub.PublishStatusChanged(ports.OrderStatusChangedEvent{
		OrderID:   orderID,
		Ref:       "ORD-1A2B3C4D",
		Status:    order.Accepted,
		ChangedAt: time.Now().UTC(),
	})

	for _, conn := range []*websocket.Conn{first, second} {
		eventType, _ := readEnvelope(t, conn)
		assert.Equal(t, realtime.EventStatusChanged, eventType)
	}
}
