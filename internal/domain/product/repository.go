package product

import "context"

// Filter narrows a catalog listing query.
type Filter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Repository is the catalog storage port.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, f Filter) ([]*Product, int, error)
	Categories(ctx context.Context) ([]string, error)

	// DecrementStock atomically subtracts qty from the product's stock only
	// when enough stock remains, and reports whether the decrement happened.
	// A conditional write, not read-modify-write, so two concurrent orders
	// cannot oversell the same units.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)

	// RestoreStock adds qty back to the product's stock.
	RestoreStock(ctx context.Context, id string, qty int) error
}
