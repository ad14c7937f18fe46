package order

import (
	"context"
	"time"
)

// Repository is the order storage port. Orders are append-only: Create
// writes the full record once, UpdateStatus is the only mutation.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*Order, error)

	// UpdateStatus is a conditional write: a cancelled order is never
	// updated, and the attempt fails with ErrOrderCancelled. Two
	// concurrent cancellations therefore cannot both succeed.
	UpdateStatus(ctx context.Context, id string, status Status, deliveredAt *time.Time) error
}

// Publisher writes order events to the append-only event log.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}
