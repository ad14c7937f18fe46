package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/marketplace/internal/auth"
	"github.com/example/marketplace/internal/domain/user"
	"github.com/example/marketplace/internal/infrastructure/store/memory"
)

func newTestService() *user.Service {
	return user.NewService(memory.NewUserRepository())
}

// ============================================
// Register Tests
// ============================================

func TestService_Register_Success(t *testing.T) {
	service := newTestService()

	u, err := service.Register(context.Background(), "Alice", "alice@example.com", "correct-horse", auth.RoleBuyer)

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, auth.RoleBuyer, u.Role)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "correct-horse", u.PasswordHash)
}

func TestService_Register_DefaultsToBuyer(t *testing.T) {
	service := newTestService()

	u, err := service.Register(context.Background(), "Alice", "alice@example.com", "correct-horse", "")

	require.NoError(t, err)
	assert.Equal(t, auth.RoleBuyer, u.Role)
}

func TestService_Register_SellerAllowed(t *testing.T) {
	service := newTestService()

	u, err := service.Register(context.Background(), "Bob", "bob@example.com", "correct-horse", auth.RoleSeller)

	require.NoError(t, err)
	assert.Equal(t, auth.RoleSeller, u.Role)
}

func TestService_Register_AdminRejected(t *testing.T) {
	service := newTestService()

	_, err := service.Register(context.Background(), "Mallory", "mallory@example.com", "correct-horse", auth.RoleAdmin)

	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	service := newTestService()

	u, err := service.Register(context.Background(), "Alice", "  Alice@Example.COM ", "correct-horse", "")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestService_Register_EmailTaken(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, "Alice", "alice@example.com", "correct-horse", "")
	require.NoError(t, err)

	_, err = service.Register(ctx, "Other Alice", "ALICE@example.com", "battery-staple", "")

	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestService_Register_MissingFields(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, "", "alice@example.com", "correct-horse", "")
	assert.ErrorIs(t, err, user.ErrMissingFields)

	_, err = service.Register(ctx, "Alice", "", "correct-horse", "")
	assert.ErrorIs(t, err, user.ErrMissingFields)

	_, err = service.Register(ctx, "Alice", "alice@example.com", "", "")
	assert.ErrorIs(t, err, user.ErrMissingFields)
}

func TestService_Register_ShortPassword(t *testing.T) {
	service := newTestService()

	_, err := service.Register(context.Background(), "Alice", "alice@example.com", "short", "")

	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

// ============================================
// Authenticate Tests
// ============================================

func TestService_Authenticate_Success(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	registered, err := service.Register(ctx, "Alice", "alice@example.com", "correct-horse", "")
	require.NoError(t, err)

	u, err := service.Authenticate(ctx, "alice@example.com", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, "Alice", "alice@example.com", "correct-horse", "")
	require.NoError(t, err)

	_, err = service.Authenticate(ctx, "alice@example.com", "battery-staple")

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestService_Authenticate_UnknownEmail(t *testing.T) {
	service := newTestService()

	_, err := service.Authenticate(context.Background(), "nobody@example.com", "correct-horse")

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
