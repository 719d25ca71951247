package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
	"bistro/internal/core/domain/services"
	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"
)

// PlaceOrderResult reports the identifiers of the newly placed order.
type PlaceOrderResult struct {
	OrderID kernel.UUID
	Ref     string
}

// PlaceOrderCommandHandler handles the business logic for order placement.
//
// The handler is the authoritative eligibility check: whatever a client
// previewed, the verdict computed here from the catalog prices and the
// geocoded distance decides whether the order is accepted. A successful
// placement persists the order in "new" status, starts reminder tracking and
// sends the confirmation mail best-effort.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	geocoder   ports.Geocoder
	catalog    ports.MenuCatalog
	feeCalc    services.DeliveryFeeCalculator
	origin     kernel.GeoPoint
	scheduler  *services.ReminderScheduler
	mailer     ports.Mailer
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	geocoder ports.Geocoder,
	catalog ports.MenuCatalog,
	feeCalc services.DeliveryFeeCalculator,
	origin kernel.GeoPoint,
	scheduler *services.ReminderScheduler,
	mailer ports.Mailer,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		catalog:    catalog,
		feeCalc:    feeCalc,
		origin:     origin,
		scheduler:  scheduler,
		mailer:     mailer,
		logger:     logger.With("component", "place_order"),
	}
}

// Handle processes the order placement command.
//
// Steps: resolve the destination address, price the items from the catalog,
// compute the authoritative fee verdict, persist the order, start reminder
// tracking and send the confirmation mail. An unlocatable address or a failed
// eligibility check returns an IneligibleOrderError carrying the reason.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := command.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	destination, err := h.geocoder.Forward(ctx, command.Customer().Address)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if destination == nil {
		return PlaceOrderResult{}, NewIneligibleOrderError(services.ReasonAddressNotFound)
	}

	items, err := h.priceItems(ctx, command.Items())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	var subtotalCents int64
	for _, item := range items {
		subtotalCents += item.SubtotalCents()
	}

	now := time.Now()
	distanceKm, err := h.origin.DistanceKmTo(*destination)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	verdict := h.feeCalc.Quote(distanceKm, subtotalCents, now)
	if !verdict.Eligible {
		return PlaceOrderResult{}, NewIneligibleOrderError(verdict.Reason)
	}

	customerInput := command.Customer()
	customer, err := order.NewCustomer(
		customerInput.Name,
		customerInput.Phone,
		customerInput.Address,
		customerInput.Email,
		customerInput.DesiredAt,
		customerInput.Note,
	)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	aggregate, err := order.NewOrder(
		command.OrderID(),
		order.GenerateRef(),
		customer,
		*destination,
		items,
		verdict.FeeCents,
		now,
	)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	h.scheduler.Track(aggregate.ID(), aggregate.Ref(), now)

	if customerInput.Email != "" {
		go h.sendConfirmation(aggregate, customerInput)
	}

	return PlaceOrderResult{OrderID: aggregate.ID(), Ref: aggregate.Ref()}, nil
}

// priceItems resolves each requested item against the catalog. Clients never
// supply names or prices; a stale or unknown item id fails the placement.
func (h PlaceOrderCommandHandler) priceItems(ctx context.Context, inputs []OrderItemInput) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(inputs))
	for _, input := range inputs {
		menuItem, err := h.catalog.Item(ctx, input.ItemID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, errs.NewObjectNotFoundError("item id", input.ItemID)
		}
		if !menuItem.Available {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"item id",
				fmt.Errorf("menu item %s is currently unavailable", input.ItemID),
			)
		}

		item, err := order.NewLineItem(menuItem.ID, menuItem.Name, menuItem.UnitPriceCents, input.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// confirmationMailTimeout bounds the background confirmation send so a hung
// mail server cannot pin the goroutine forever.
const confirmationMailTimeout = 10 * time.Second

// sendConfirmation mails the order confirmation best-effort, off the request
// path. A mail failure is logged and swallowed; the order has already been
// committed, so placement never waits on, or fails with, the mail channel.
func (h PlaceOrderCommandHandler) sendConfirmation(aggregate *order.Order, customer CustomerInput) {
	ctx, cancel := context.WithTimeout(context.Background(), confirmationMailTimeout)
	defer cancel()

	confirmation := ports.OrderConfirmation{
		To:              customer.Email,
		CustomerName:    customer.Name,
		Ref:             aggregate.Ref(),
		SubtotalCents:   aggregate.SubtotalCents(),
		FeeCents:        aggregate.DeliveryFeeCents(),
		GrandTotalCents: aggregate.GrandTotalCents(),
	}

	if err := h.mailer.SendOrderConfirmation(ctx, confirmation); err != nil {
		h.logger.Warn("order confirmation mail failed",
			"order_ref", aggregate.Ref(),
			"error", err)
	}
}
