package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
)

// Item is one line in a shopper's cart. Price is the catalog price captured
// when the product was first added; it never tracks later catalog changes.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// Cart is the single mutable cart of a user, created lazily on first add.
type Cart struct {
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal sums the snapshot price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// findItem returns the index of the line with the given item ID.
func (c *Cart) findItem(itemID string) (int, bool) {
	for i, it := range c.Items {
		if it.ID == itemID {
			return i, true
		}
	}
	return -1, false
}

// findProduct returns the index of the line referencing the given product.
func (c *Cart) findProduct(productID string) (int, bool) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i, true
		}
	}
	return -1, false
}
