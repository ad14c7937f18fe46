package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"

	"github.com/example/marketplace/internal/domain/order"
	"github.com/example/marketplace/internal/domain/user"
	"github.com/example/marketplace/internal/email"
)

// Mailer sends order confirmation messages.
type Mailer interface {
	SendOrderConfirmation(to, orderID string, total decimal.Decimal, items []email.OrderItem) error
}

// Handler processes order events for sending notifications
type Handler struct {
	mailer Mailer
	users  user.Repository
}

// NewHandler creates a new notification handler
func NewHandler(mailer Mailer, users user.Repository) *Handler {
	return &Handler{
		mailer: mailer,
		users:  users,
	}
}

// HandleEvent processes an event from the order event log
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event order.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	if event.Type == order.EventOrderPlaced {
		return h.handleOrderPlaced(ctx, event)
	}

	return nil
}

func (h *Handler) handleOrderPlaced(ctx context.Context, event order.Event) error {
	var e order.OrderPlaced
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderPlaced event for order %s, user %s", e.OrderID, e.UserID)

	u, err := h.users.GetByID(ctx, e.UserID)
	if err != nil {
		// A missing user is not retryable; drop the event.
		log.Printf("[Notifier] Could not load user %s: %v", e.UserID, err)
		return nil
	}

	emailItems := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		emailItems[i] = email.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err := h.mailer.SendOrderConfirmation(u.Email, e.OrderID, e.TotalPrice, emailItems); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", u.Email, err)
		return err
	}

	log.Printf("[Notifier] Order confirmation email sent to %s for order %s", u.Email, e.OrderID)
	return nil
}
