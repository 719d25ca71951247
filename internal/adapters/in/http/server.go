// Package http exposes the order coordination API over echo. Handlers bind
// request DTOs, build validated commands and queries, and map domain errors
// to status codes; business rules stay in the application layer.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"bistro/internal/adapters/in/realtime"
	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/application/usecases/queries"
	"bistro/internal/core/domain/model/driver"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler        commands.PlaceOrderCommandHandler
	changeStatusHandler      commands.ChangeOrderStatusCommandHandler
	confirmOrderHandler      commands.ConfirmOrderCommandHandler
	assignDriverHandler      commands.AssignDriverCommandHandler
	recordDriverFixHandler   commands.RecordDriverFixCommandHandler
	dismissReminderHandler   commands.DismissReminderCommandHandler
	listOrdersHandler        queries.GetOrdersByStatusQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	getDriverLocationHandler queries.GetDriverLocationQueryHandler

	hub    *realtime.Hub
	logger *slog.Logger
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	recordDriverFixHandler commands.RecordDriverFixCommandHandler,
	dismissReminderHandler commands.DismissReminderCommandHandler,
	listOrdersHandler queries.GetOrdersByStatusQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getDriverLocationHandler queries.GetDriverLocationQueryHandler,
	hub *realtime.Hub,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		changeStatusHandler:      changeStatusHandler,
		confirmOrderHandler:      confirmOrderHandler,
		assignDriverHandler:      assignDriverHandler,
		recordDriverFixHandler:   recordDriverFixHandler,
		dismissReminderHandler:   dismissReminderHandler,
		listOrdersHandler:        listOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getDriverLocationHandler: getDriverLocationHandler,
		hub:                      hub,
		logger:                   logger.With("component", "http"),
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.ChangeOrderStatus)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/assign-driver", s.AssignDriver)
	api.POST("/orders/:id/reminders/dismiss", s.DismissReminder)
	api.GET("/orders/:id/driver-location", s.GetDriverLocation)
	api.POST("/drivers/:id/location", s.RecordDriverFix)

	e.GET("/ws/orders/:id", s.JoinOrderRoom)
	e.GET("/ws/admin", s.JoinStaffRoom)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// writeError maps domain and application errors to HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var ineligible *commands.IneligibleOrderError
	if errors.As(err, &ineligible) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "order is not eligible for delivery",
			Reason:  ineligible.Reason,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderIsTerminal),
		errors.Is(err, driver.ErrDriverIsBusy),
		errors.Is(err, driver.ErrDriverIsInactive):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.logger.Error("request failed", "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
