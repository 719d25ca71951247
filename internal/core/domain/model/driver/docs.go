// Package driver provides the Driver aggregate root for delivery driver
// management: identity, availability, the last known location fix, and the
// at-most-one current order reference.
//
// The current-order reference forms one half of a bidirectional invariant with
// the order's driver reference; the assignment use case keeps both sides
// consistent within a single transaction.
package driver
