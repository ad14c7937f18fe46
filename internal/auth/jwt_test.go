package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret-key-for-testing-purposes", 15*time.Minute)
}

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService()
	assert.NotNil(t, service)
	assert.Equal(t, 15*time.Minute, service.TokenExpiry())
}

func TestJWTService_GenerateToken_Success(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateToken("user-123", RoleBuyer)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestJWTService_ValidateToken_Valid(t *testing.T) {
	service := newTestJWTService()

	token, _, err := service.GenerateToken("user-456", RoleAdmin)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "user-456", claims.Subject)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := newTestJWTService()

	claims, err := service.ValidateToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTService("a-completely-different-secret-key", 15*time.Minute)

	token, _, err := other.GenerateToken("user-123", RoleBuyer)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret-key-for-testing-purposes", -1*time.Minute)

	token, _, err := service.GenerateToken("user-123", RoleBuyer)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_WrongSigningMethod(t *testing.T) {
	service := newTestJWTService()

	// A token signed with "none" must be rejected.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-123", Role: RoleAdmin})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_Principal(t *testing.T) {
	claims := &Claims{UserID: "user-789", Role: RoleSeller}

	p := claims.Principal()

	assert.Equal(t, "user-789", p.UserID)
	assert.Equal(t, RoleSeller, p.Role)
	assert.False(t, p.IsAdmin())
	assert.True(t, p.CanManageListings())
}
