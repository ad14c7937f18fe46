package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidCategory = errors.New("category is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStock    = errors.New("stock must not be negative")
	ErrNotOwner        = errors.New("not authorized to modify this product")
)

// Product is a catalog listing owned by a seller. Stock is mutated only by
// the listing owner (restock) and the order engine (placement, cancellation).
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Stock          int               `json:"stock"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand,omitempty"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications,omitempty"`
	SellerID       string            `json:"seller_id"`
	Rating         decimal.Decimal   `json:"rating"`
	NumReviews     int               `json:"num_reviews"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Draft carries the seller-editable fields of a listing.
type Draft struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Stock          int               `json:"stock"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
}

func (d Draft) validate() error {
	if d.Name == "" {
		return ErrInvalidName
	}
	if d.Category == "" {
		return ErrInvalidCategory
	}
	if d.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if d.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
