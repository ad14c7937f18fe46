package memory

import (
	"context"
	"sync"

	"github.com/example/marketplace/internal/domain/cart"
)

// CartRepository is a thread-safe in-memory cart.Repository.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart

	// FailClear makes the next Clear return this error.
	FailClear error
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*cart.Cart)}
}

func (r *CartRepository) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[userID]
	if !ok {
		return &cart.Cart{UserID: userID, Items: []cart.Item{}}, nil
	}
	return cloneCart(c), nil
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.UserID] = cloneCart(c)
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailClear != nil {
		err := r.FailClear
		r.FailClear = nil
		return err
	}
	delete(r.carts, userID)
	return nil
}

func cloneCart(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)
	return &cp
}
