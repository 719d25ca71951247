package ports

import (
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/domain/model/order"
)

// OrderStatusChangedEvent is published to the order's room after every
// effective status transition. Exactly one event per transition; idempotent
// no-op changes publish nothing.
type OrderStatusChangedEvent struct {
	OrderID   kernel.UUID
	Ref       string
	Status    order.Status
	ChangedAt time.Time
}

// DriverLocationChangedEvent is published to the room of the driver's current
// order after every accepted location fix.
type DriverLocationChangedEvent struct {
	OrderID     kernel.UUID
	Latitude    float64
	Longitude   float64
	LastUpdated time.Time
	DriverName  string
}

// ReminderDueEvent is published to the staff room when the reminder scheduler
// surfaces an attention-required alert.
type ReminderDueEvent struct {
	OrderID    kernel.UUID
	Ref        string
	ShownCount int
}

// EventPublisher fans events out to realtime subscribers. Delivery is
// best-effort and at-most-once per subscriber; publishing never blocks the
// caller and never returns an error.
type EventPublisher interface {
	PublishStatusChanged(event OrderStatusChangedEvent)
	PublishLocationChanged(event DriverLocationChangedEvent)
	PublishReminderDue(event ReminderDueEvent)
}
