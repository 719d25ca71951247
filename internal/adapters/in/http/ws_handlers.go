package http

import (
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"bistro/internal/adapters/in/realtime"
	"bistro/internal/core/domain/model/kernel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// JoinOrderRoom handles GET /ws/orders/:id, subscribing the connection to one
// order's events.
func (s *Server) JoinOrderRoom(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	s.hub.HandleConnection(conn, realtime.OrderRoom(orderID))
	return nil
}

// JoinStaffRoom handles GET /ws/admin, subscribing the connection to reminder
// alerts.
func (s *Server) JoinStaffRoom(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	s.hub.HandleConnection(conn, realtime.StaffRoom)
	return nil
}
