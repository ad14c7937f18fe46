package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/marketplace/internal/domain/cart"
	"github.com/example/marketplace/internal/domain/product"
	"github.com/example/marketplace/internal/infrastructure/store/memory"
)

func newTestService(t *testing.T) (*cart.Service, *memory.ProductRepository) {
	t.Helper()
	carts := memory.NewCartRepository()
	products := memory.NewProductRepository()
	return cart.NewService(carts, products), products
}

func seedProduct(t *testing.T, products *memory.ProductRepository, id string, price int64, stock int) {
	t.Helper()
	err := products.Create(context.Background(), &product.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		Category: "electronics",
		Images:   []string{"https://img.example.com/" + id + ".jpg"},
	})
	require.NoError(t, err)
}

// ============================================
// AddItem Tests
// ============================================

func TestService_AddItem_Success(t *testing.T) {
	service, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", 450, 10)

	c, err := service.AddItem(ctx, "user-1", "p1", 2)

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	item := c.Items[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, "Product p1", item.Name)
	assert.Equal(t, "https://img.example.com/p1.jpg", item.Image)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, decimal.NewFromInt(450).Equal(item.Price))
}

func TestService_AddItem_MergesExistingLine(t *testing.T) {
	service, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", 450, 10)

	first, err := service.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)
	c, err := service.AddItem(ctx, "user-1", "p1", 3)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, first.Items[0].ID, c.Items[0].ID)
}

func TestService_AddItem_KeepsFirstSnapshotOnMerge(t *testing.T) {
	service, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", 450, 10)

	_, err := service.AddItem(ctx, "user-1", "p1", 1)
	require.NoError(t, err)

	// Catalog price moves between the two adds.
	p, err := products.Get(ctx, "p1")
	require.NoError(t, err)
	p.Price = decimal.NewFromInt(999)
	require.NoError(t, products.Update(ctx, p))

	c, err := service.AddItem(ctx, "user-1", "p1", 1)

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.True(t, decimal.NewFromInt(450).Equal(c.Items[0].Price), "snapshot price %s", c.Items[0].Price)
}

func TestService_AddItem_InvalidQuantity(t *testing.T) {
	service, products := newTestService(t)
	seedProduct(t, products, "p1", 450, 10)

	for _, qty := range []int{0, -1} {
		_, err := service.AddItem(context.Background(), "user-1", "p1", qty)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	}
}

func TestService_AddItem_UnknownProduct(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.AddItem(context.Background(), "user-1", "missing", 1)

	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestService_AddItem_AllowsExceedingStock(t *testing.T) {
	// Stock is checked at placement, not at add time.
	service, products := newTestService(t)
	seedProduct(t, products, "p1", 450, 2)

	c, err := service.AddItem(context.Background(), "user-1", "p1", 50)

	require.NoError(t, err)
	assert.Equal(t, 50, c.Items[0].Quantity)
}

// ============================================
// UpdateQuantity Tests
// ============================================

func TestService_UpdateQuantity_Success(t *testing.T) {
	service, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", 450, 10)

	c, err := service.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	c, err = service.UpdateQuantity(ctx, "user-1", c.Items[0].ID, 7)

	require.NoError(t, err)
	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestService_UpdateQuantity_InvalidQuantity(t *testing.T) {
	service, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", 450, 10)

	c, err := service.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	_, err = service.UpdateQuantity(ctx, "user-1", c.Items[0].ID, 0)

	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}

func TestService_UpdateQuantity_ItemNotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.UpdateQuantity(context.Background(), "user-1", "missing", 3)

	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

// ============================================
// RemoveItem Tests
// ============================================

func TestService_RemoveItem_Success(t *testing.T) {
	service, products := newTestService(t)
	ctx := context.Background()
	seedProduct(t, products, "p1", 450, 10)
	seedProduct(t, products, "p2", 100, 10)

	c, err := service.AddItem(ctx, "user-1", "p1", 1)
	require.NoError(t, err)
	c, err = service.AddItem(ctx, "user-1", "p2", 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 2)

	c, err = service.RemoveItem(ctx, "user-1", c.Items[0].ID)

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)
}

func TestService_RemoveItem_ItemNotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.RemoveItem(context.Background(), "user-1", "missing")

	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

// ============================================
// Subtotal Tests
// ============================================

func TestCart_Subtotal(t *testing.T) {
	c := &cart.Cart{Items: []cart.Item{
		{Price: decimal.NewFromInt(450), Quantity: 2},
		{Price: decimal.NewFromInt(1200), Quantity: 1},
	}}

	assert.True(t, decimal.NewFromInt(2100).Equal(c.Subtotal()))
}

func TestCart_Subtotal_Empty(t *testing.T) {
	c := &cart.Cart{}
	assert.True(t, decimal.Zero.Equal(c.Subtotal()))
}
