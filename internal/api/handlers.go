package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/marketplace/internal/api/middleware"
	"github.com/example/marketplace/internal/auth"
	"github.com/example/marketplace/internal/domain/cart"
	"github.com/example/marketplace/internal/domain/order"
	"github.com/example/marketplace/internal/domain/product"
	"github.com/example/marketplace/internal/domain/user"
)

// Handlers serves the catalog, cart and order endpoints.
type Handlers struct {
	products *product.Service
	carts    *cart.Service
	orders   *order.Service
}

func NewHandlers(products *product.Service, carts *cart.Service, orders *order.Service) *Handlers {
	return &Handlers{
		products: products,
		carts:    carts,
		orders:   orders,
	}
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondMessage writes the shop API's {"message": ...} error shape.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondDomainError maps domain errors onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	respondMessage(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, order.ErrOrderCancelled),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidName),
		errors.Is(err, product.ErrInvalidCategory),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrMissingFields),
		errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// principal returns the validated identity; middleware guarantees presence
// on protected routes.
func principal(r *http.Request) auth.Principal {
	p, _ := middleware.GetPrincipal(r.Context())
	return p
}
