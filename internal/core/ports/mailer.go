package ports

import (
	"context"
)

// OrderConfirmation is the content of the confirmation mail sent after an
// order is placed.
type OrderConfirmation struct {
	To              string
	CustomerName    string
	Ref             string
	SubtotalCents   int64
	FeeCents        int64
	GrandTotalCents int64
}

// Mailer sends customer notifications. Sending is fire-and-forget from the
// caller's point of view: a mail failure must never fail the order.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, confirmation OrderConfirmation) error
}
