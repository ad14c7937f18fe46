package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/marketplace/internal/domain/product"
)

// Service implements cart mutations. Stock is deliberately not checked at
// add time; the order engine checks it at placement.
type Service struct {
	carts    Repository
	products product.Repository
}

func NewService(carts Repository, products product.Repository) *Service {
	return &Service{carts: carts, products: products}
}

func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddItem puts quantity units of a product into the user's cart. Adding a
// product already in the cart increases the line's quantity and keeps the
// price snapshot from the first add.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i, ok := c.findProduct(productID); ok {
		c.Items[i].Quantity += quantity
	} else {
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		c.Items = append(c.Items, Item{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Name:      p.Name,
			Image:     image,
			Price:     p.Price,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}
	c.UpdatedAt = time.Now()

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the quantity of an existing cart line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	i, ok := c.findItem(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	c.Items[i].Quantity = quantity
	c.UpdatedAt = time.Now()

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem deletes a cart line unconditionally.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (*Cart, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	i, ok := c.findItem(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.UpdatedAt = time.Now()

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
