// Package services contains stateless domain services that implement business
// logic spanning value objects and aggregates: delivery fee calculation over
// distance bands and the staff reminder protocol for unacknowledged orders.
package services
