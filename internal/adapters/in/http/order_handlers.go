package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/application/usecases/queries"
	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
)

type placeOrderRequest struct {
	Customer struct {
		Name      string     `json:"name"`
		Phone     string     `json:"phone"`
		Address   string     `json:"address"`
		Email     string     `json:"email"`
		DesiredAt *time.Time `json:"desiredAt"`
		Note      string     `json:"note"`
	} `json:"customer"`
	Items []struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

type placeOrderResponse struct {
	ID  string `json:"id"`
	Ref string `json:"ref"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request placeOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]commands.OrderItemInput, len(request.Items))
	for i, item := range request.Items {
		items[i] = commands.OrderItemInput{ItemID: item.ItemID, Quantity: item.Quantity}
	}

	command, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		commands.CustomerInput{
			Name:      request.Customer.Name,
			Phone:     request.Customer.Phone,
			Address:   request.Customer.Address,
			Email:     request.Customer.Email,
			DesiredAt: request.Customer.DesiredAt,
			Note:      request.Customer.Note,
		},
		items,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, placeOrderResponse{
		ID:  result.OrderID.String(),
		Ref: result.Ref,
	})
}

type orderSummaryResponse struct {
	ID               string    `json:"id"`
	Ref              string    `json:"ref"`
	Status           string    `json:"status"`
	CustomerName     string    `json:"customerName"`
	CustomerPhone    string    `json:"customerPhone"`
	SubtotalCents    int64     `json:"subtotalCents"`
	DeliveryFeeCents int64     `json:"deliveryFeeCents"`
	GrandTotalCents  int64     `json:"grandTotalCents"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ListOrders handles GET /api/v1/orders with an optional status filter.
func (s *Server) ListOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	if statusParam := ctx.QueryParam("status"); statusParam != "" {
		status, err := order.StatusFromString(statusParam)
		if err != nil {
			return badRequest(ctx, "unknown status: "+statusParam)
		}
		query, err = queries.NewGetOrdersByStatusQuery(status)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]orderSummaryResponse, len(orders))
	for i, row := range orders {
		response[i] = orderSummaryResponse{
			ID:               row.ID.String(),
			Ref:              row.Ref,
			Status:           row.Status.String(),
			CustomerName:     row.CustomerName,
			CustomerPhone:    row.CustomerPhone,
			SubtotalCents:    row.SubtotalCents,
			DeliveryFeeCents: row.DeliveryFeeCents,
			GrandTotalCents:  row.GrandTotalCents,
			CreatedAt:        row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type orderItemResponse struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

type orderDetailsResponse struct {
	ID               string              `json:"id"`
	Ref              string              `json:"ref"`
	Status           string              `json:"status"`
	CustomerName     string              `json:"customerName"`
	CustomerPhone    string              `json:"customerPhone"`
	CustomerAddress  string              `json:"customerAddress"`
	Items            []orderItemResponse `json:"items"`
	SubtotalCents    int64               `json:"subtotalCents"`
	DeliveryFeeCents int64               `json:"deliveryFeeCents"`
	GrandTotalCents  int64               `json:"grandTotalCents"`
	DriverID         *string             `json:"driverId"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	details, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	items := make([]orderItemResponse, len(details.Items))
	for i, item := range details.Items {
		items[i] = orderItemResponse{
			ItemID:         item.ItemID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		}
	}

	var driverID *string
	if details.DriverID != nil {
		id := details.DriverID.String()
		driverID = &id
	}

	return ctx.JSON(http.StatusOK, orderDetailsResponse{
		ID:               details.ID.String(),
		Ref:              details.Ref,
		Status:           details.Status.String(),
		CustomerName:     details.CustomerName,
		CustomerPhone:    details.CustomerPhone,
		CustomerAddress:  details.CustomerAddress,
		Items:            items,
		SubtotalCents:    details.SubtotalCents,
		DeliveryFeeCents: details.DeliveryFeeCents,
		GrandTotalCents:  details.GrandTotalCents,
		DriverID:         driverID,
		CreatedAt:        details.CreatedAt,
		UpdatedAt:        details.UpdatedAt,
	})
}

type changeOrderStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request changeOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "unknown status: "+request.Status)
	}

	command, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.changeStatusHandler.Handle(ctx.Request().Context(), command); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm. Staff acknowledgement
// of a reminder alert, moving the order to accepted.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	command, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignDriverRequest struct {
	DriverID string `json:"driverId"`
}

// AssignDriver handles POST /api/v1/orders/:id/assign-driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request assignDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	command, err := commands.NewAssignDriverCommand(orderID, driverID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.assignDriverHandler.Handle(ctx.Request().Context(), command); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DismissReminder handles POST /api/v1/orders/:id/reminders/dismiss.
func (s *Server) DismissReminder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	command, err := commands.NewDismissReminderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.dismissReminderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type driverLocationResponse struct {
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	LastUpdated *time.Time `json:"lastUpdated"`
	DriverName  string     `json:"driverName,omitempty"`
	Source      string     `json:"source"`
}

// GetDriverLocation handles GET /api/v1/orders/:id/driver-location.
func (s *Server) GetDriverLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetDriverLocationQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	location, err := s.getDriverLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, driverLocationResponse{
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		LastUpdated: location.LastUpdated,
		DriverName:  location.DriverName,
		Source:      location.Source,
	})
}
