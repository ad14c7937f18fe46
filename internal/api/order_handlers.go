package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/marketplace/internal/auth"
	"github.com/example/marketplace/internal/domain/order"
)

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingAddress order.Address       `json:"shippingAddress"`
		PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.Place(r.Context(), principal(r).UserID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

// GetOrders returns the caller's own orders; sellers and admins see all
// orders, newest first.
func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	p := principal(r)

	var (
		orders []*order.Order
		err    error
	)
	if p.Role == auth.RoleSeller || p.Role == auth.RoleAdmin {
		orders, err = h.orders.ListAll(r.Context())
	} else {
		orders, err = h.orders.ListByUser(r.Context(), p.UserID)
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/orders/")

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	p := principal(r)
	if o.UserID != p.UserID && !p.IsAdmin() {
		respondMessage(w, http.StatusForbidden, "Not authorized")
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/orders/")
	id = strings.TrimSuffix(id, "/status")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.SetStatus(r.Context(), id, order.Status(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
