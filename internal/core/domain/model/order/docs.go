// Package order provides domain entities and business logic for food order
// management. It implements the Order aggregate root with lifecycle management
// and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, totals, and lifecycle
//   - Status: A state machine enforcing the linear happy path with a side-exit to Canceled
//   - LineItem: An immutable snapshot of one ordered menu item
//   - Customer: The contact and delivery details captured with an order
//
// Key business rules:
//   - Orders must have a valid identifier, reference code, destination, and at least one item
//   - Line items are priced in minor currency units and immutable after creation
//   - Grand total always equals subtotal plus delivery fee
//   - Status follows new -> accepted -> preparing -> on_the_way -> delivered,
//     with canceled reachable from any non-terminal status
//   - Transition to the current status is an idempotent no-op
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
