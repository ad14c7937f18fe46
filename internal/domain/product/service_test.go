package product_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/marketplace/internal/auth"
	"github.com/example/marketplace/internal/domain/product"
	"github.com/example/marketplace/internal/infrastructure/store/memory"
)

var (
	seller      = auth.Principal{UserID: "seller-1", Role: auth.RoleSeller}
	otherSeller = auth.Principal{UserID: "seller-2", Role: auth.RoleSeller}
	admin       = auth.Principal{UserID: "admin-1", Role: auth.RoleAdmin}
)

func newTestService() *product.Service {
	return product.NewService(memory.NewProductRepository())
}

func validDraft() product.Draft {
	return product.Draft{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       decimal.NewFromInt(450),
		Stock:       10,
		Category:    "electronics",
		Brand:       gofakeit.Company(),
		Images:      []string{gofakeit.URL()},
	}
}

// ============================================
// Create Tests
// ============================================

func TestService_Create_Success(t *testing.T) {
	service := newTestService()
	d := validDraft()

	p, err := service.Create(context.Background(), seller, d)

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, d.Name, p.Name)
	assert.Equal(t, seller.UserID, p.SellerID)
	assert.Equal(t, 10, p.Stock)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestService_Create_Validation(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*product.Draft)
		wantErr error
	}{
		{"empty name", func(d *product.Draft) { d.Name = "" }, product.ErrInvalidName},
		{"empty category", func(d *product.Draft) { d.Category = "" }, product.ErrInvalidCategory},
		{"negative price", func(d *product.Draft) { d.Price = decimal.NewFromInt(-1) }, product.ErrInvalidPrice},
		{"negative stock", func(d *product.Draft) { d.Stock = -1 }, product.ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			p, err := service.Create(ctx, seller, d)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, p)
		})
	}
}

func TestService_Create_ZeroPriceAllowed(t *testing.T) {
	service := newTestService()
	d := validDraft()
	d.Price = decimal.Zero

	_, err := service.Create(context.Background(), seller, d)

	assert.NoError(t, err)
}

// ============================================
// Update Tests
// ============================================

func TestService_Update_ByOwner(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	p, err := service.Create(ctx, seller, validDraft())
	require.NoError(t, err)

	d := validDraft()
	d.Name = "Renamed"
	d.Price = decimal.NewFromInt(999)

	updated, err := service.Update(ctx, seller, p.ID, d)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, decimal.NewFromInt(999).Equal(updated.Price))
	assert.Equal(t, seller.UserID, updated.SellerID)
}

func TestService_Update_ByOtherSeller(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	p, err := service.Create(ctx, seller, validDraft())
	require.NoError(t, err)

	_, err = service.Update(ctx, otherSeller, p.ID, validDraft())

	assert.ErrorIs(t, err, product.ErrNotOwner)
}

func TestService_Update_ByAdmin(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	p, err := service.Create(ctx, seller, validDraft())
	require.NoError(t, err)

	_, err = service.Update(ctx, admin, p.ID, validDraft())

	assert.NoError(t, err)
}

func TestService_Update_NotFound(t *testing.T) {
	service := newTestService()

	_, err := service.Update(context.Background(), seller, "missing", validDraft())

	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

// ============================================
// Delete Tests
// ============================================

func TestService_Delete_ByOwner(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	p, err := service.Create(ctx, seller, validDraft())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, seller, p.ID))

	_, err = service.Get(ctx, p.ID)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestService_Delete_ByOtherSeller(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	p, err := service.Create(ctx, seller, validDraft())
	require.NoError(t, err)

	err = service.Delete(ctx, otherSeller, p.ID)

	assert.ErrorIs(t, err, product.ErrNotOwner)
}

// ============================================
// List Tests
// ============================================

func TestService_List_FiltersByCategory(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := validDraft()
		d.Category = "books"
		_, err := service.Create(ctx, seller, d)
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, seller, validDraft()) // electronics
	require.NoError(t, err)

	products, total, err := service.List(ctx, product.Filter{Category: "books"})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 3)
}

func TestService_List_Search(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	d := validDraft()
	d.Name = "Mechanical Keyboard"
	_, err := service.Create(ctx, seller, d)
	require.NoError(t, err)
	_, err = service.Create(ctx, seller, validDraft())
	require.NoError(t, err)

	products, total, err := service.List(ctx, product.Filter{Search: "keyboard"})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Mechanical Keyboard", products[0].Name)
}

func TestService_List_Pagination(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d := validDraft()
		d.Name = fmt.Sprintf("Item %d", i)
		_, err := service.Create(ctx, seller, d)
		require.NoError(t, err)
	}

	page, total, err := service.List(ctx, product.Filter{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)
}

func TestService_List_ClampsPageAndLimit(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Create(ctx, seller, validDraft())
	require.NoError(t, err)

	// Out-of-range inputs fall back to sane defaults instead of erroring.
	products, total, err := service.List(ctx, product.Filter{Page: -3, Limit: 100000})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, products, 1)
}

func TestService_Categories(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	for _, category := range []string{"books", "electronics", "books"} {
		d := validDraft()
		d.Category = category
		_, err := service.Create(ctx, seller, d)
		require.NoError(t, err)
	}

	categories, err := service.Categories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"books", "electronics"}, categories)
}
