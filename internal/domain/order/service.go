package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/example/marketplace/internal/domain/cart"
	"github.com/example/marketplace/internal/domain/product"
)

var (
	// ShippingFee is the flat shipping price per order.
	ShippingFee = decimal.NewFromInt(50)

	// TaxRate is applied to the items subtotal.
	TaxRate = decimal.NewFromFloat(0.18)
)

// Service is the order engine: it converts carts into immutable orders,
// deducts inventory and manages order lifecycle status.
type Service struct {
	orders   Repository
	carts    cart.Repository
	products product.Repository
	events   Publisher
}

// NewService wires the order engine. events may be nil when no event log is
// configured; publishing is best-effort either way.
func NewService(orders Repository, carts cart.Repository, products product.Repository, events Publisher) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		products: products,
		events:   events,
	}
}

// Place converts the user's cart into an order.
//
// Stock is verified against the live catalog first, so the common failure
// mutates nothing. The decrements themselves are conditional writes; a
// decrement lost to a concurrent order triggers compensation of the
// decrements already applied in this call, so a failed placement never
// leaves stock deducted. Prices always come from the cart's snapshots, not
// the live catalog.
func (s *Service) Place(ctx context.Context, userID string, addr Address, method PaymentMethod) (*Order, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Verify the whole cart before touching any stock.
	for _, it := range c.Items {
		p, err := s.products.Get(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", it.ProductID, err)
		}
		if p.Stock < it.Quantity {
			return nil, &InsufficientStockError{ProductID: p.ID, Name: p.Name}
		}
	}

	for i, it := range c.Items {
		ok, err := s.products.DecrementStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			s.restock(ctx, c.Items[:i])
			return nil, fmt.Errorf("decrement stock for %s: %w", it.ProductID, err)
		}
		if !ok {
			// Lost the race to a concurrent order after the check above.
			s.restock(ctx, c.Items[:i])
			return nil, &InsufficientStockError{ProductID: it.ProductID, Name: it.Name}
		}
	}

	items := lo.Map(c.Items, func(it cart.Item, _ int) Item {
		return Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	})

	itemsPrice := c.Subtotal()
	taxPrice := itemsPrice.Mul(TaxRate).Round(2)
	totalPrice := itemsPrice.Add(ShippingFee).Add(taxPrice)

	if method == "" {
		method = PaymentCOD
	}

	now := time.Now()
	o := &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   method,
		PaymentStatus:   PaymentPending,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   ShippingFee,
		TaxPrice:        taxPrice,
		TotalPrice:      totalPrice,
		Status:          StatusPlaced,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		s.restock(ctx, c.Items)
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// The order exists and stock is deducted; a stale cart is recoverable,
	// a phantom failure for a real order is not.
	if err := s.carts.Clear(ctx, userID); err != nil {
		log.Printf("[Order] Failed to clear cart for user %s after order %s: %v", userID, o.ID, err)
	}

	s.publish(ctx, o.ID, EventOrderPlaced, OrderPlaced{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Items:      o.Items,
		TotalPrice: o.TotalPrice,
		PlacedAt:   o.CreatedAt,
	})

	return o, nil
}

// SetStatus moves an order to the given lifecycle status. There is no
// forward-only transition graph; the only rule is that cancelled is
// terminal. The repository's conditional write enforces that, so of two
// concurrent cancellations only one reaches the restock below — the early
// status check is just a fast path. Reaching delivered stamps the
// delivery timestamp.
func (s *Service) SetStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCancelled {
		return nil, ErrOrderCancelled
	}

	var deliveredAt *time.Time
	if status == StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status, deliveredAt); err != nil {
		return nil, err
	}

	if status == StatusCancelled {
		// Cancellation hands the reserved units back to the catalog.
		s.restockOrder(ctx, o.Items)
	}

	o.Status = status
	o.DeliveredAt = deliveredAt
	o.UpdatedAt = time.Now()

	s.publish(ctx, o.ID, EventOrderStatusChanged, OrderStatusChanged{
		OrderID:   o.ID,
		Status:    status,
		ChangedAt: o.UpdatedAt,
	})

	return o, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.orders.Get(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.orders.ListAll(ctx)
}

// restock compensates decrements applied earlier in a failed placement.
func (s *Service) restock(ctx context.Context, items []cart.Item) {
	for _, it := range items {
		if err := s.products.RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
			log.Printf("[Order] Failed to restore %d units of %s: %v", it.Quantity, it.ProductID, err)
		}
	}
}

func (s *Service) restockOrder(ctx context.Context, items []Item) {
	for _, it := range items {
		if err := s.products.RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
			log.Printf("[Order] Failed to restore %d units of %s: %v", it.Quantity, it.ProductID, err)
		}
	}
}

func (s *Service) publish(ctx context.Context, orderID, eventType string, payload any) {
	if s.events == nil {
		return
	}
	event, err := newEvent(eventType, orderID, payload)
	if err != nil {
		log.Printf("[Order] Failed to encode %s event for order %s: %v", eventType, orderID, err)
		return
	}
	if err := s.events.Publish(ctx, orderID, event); err != nil {
		log.Printf("[Order] Failed to publish %s event for order %s: %v", eventType, orderID, err)
	}
}
