package cart

import "context"

// Repository is the cart storage port. Get returns an empty cart when the
// user has none yet; absence and emptiness are indistinguishable on purpose.
type Repository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Clear(ctx context.Context, userID string) error
}
