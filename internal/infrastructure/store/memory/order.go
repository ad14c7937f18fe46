package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/marketplace/internal/domain/order"
)

// OrderRepository is a thread-safe in-memory order.Repository.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order

	// FailCreate makes the next Create return this error, for exercising
	// the order engine's compensation path.
	FailCreate error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*order.Order)}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate != nil {
		err := r.FailCreate
		r.FailCreate = nil
		return err
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var orders []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, cloneOrder(o))
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var orders []*order.Order
	for _, o := range r.orders {
		orders = append(orders, cloneOrder(o))
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status, deliveredAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	// Conditional write, matching the postgres repository: a cancelled
	// order is immutable.
	if o.Status == order.StatusCancelled {
		return order.ErrOrderCancelled
	}
	o.Status = status
	if deliveredAt != nil {
		o.DeliveredAt = deliveredAt
	}
	o.UpdatedAt = time.Now()
	return nil
}

func sortNewestFirst(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func cloneOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		cp.DeliveredAt = &t
	}
	return &cp
}
