package product

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/marketplace/internal/auth"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service implements catalog operations over a Repository.
type Service struct {
	products Repository
}

func NewService(products Repository) *Service {
	return &Service{products: products}
}

// Create adds a new listing owned by the acting seller.
func (s *Service) Create(ctx context.Context, actor auth.Principal, d Draft) (*Product, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Product{
		ID:             uuid.New().String(),
		Name:           d.Name,
		Description:    d.Description,
		Price:          d.Price,
		Stock:          d.Stock,
		Category:       d.Category,
		Brand:          d.Brand,
		Images:         d.Images,
		Specifications: d.Specifications,
		SellerID:       actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the seller-editable fields of a listing. Only the owning
// seller or an admin may update.
func (s *Service) Update(ctx context.Context, actor auth.Principal, productID string, d Draft) (*Product, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.SellerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrNotOwner
	}

	p.Name = d.Name
	p.Description = d.Description
	p.Price = d.Price
	p.Stock = d.Stock
	p.Category = d.Category
	p.Brand = d.Brand
	if d.Images != nil {
		p.Images = d.Images
	}
	if d.Specifications != nil {
		p.Specifications = d.Specifications
	}
	p.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a listing. Only the owning seller or an admin may delete.
func (s *Service) Delete(ctx context.Context, actor auth.Principal, productID string) error {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID != actor.UserID && !actor.IsAdmin() {
		return ErrNotOwner
	}
	return s.products.Delete(ctx, productID)
}

func (s *Service) Get(ctx context.Context, productID string) (*Product, error) {
	return s.products.Get(ctx, productID)
}

// List returns a page of listings, newest first, with the total match count.
func (s *Service) List(ctx context.Context, f Filter) ([]*Product, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	return s.products.List(ctx, f)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}
