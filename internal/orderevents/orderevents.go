// Package orderevents announces placed orders to downstream consumers.
package orderevents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"shopswift/internal/domain"
)

// Line is one cart line of a placed order.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// OrderPlaced is the message body. Payment fields are never included.
type OrderPlaced struct {
	OrderNumber string          `json:"orderNumber"`
	UserID      string          `json:"userId,omitempty"`
	Email       string          `json:"email"`
	ItemCount   int             `json:"itemCount"`
	Total       decimal.Decimal `json:"total"`
	Lines       []Line          `json:"lines"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// FromConfirmation builds the event for a confirmed order.
func FromConfirmation(c domain.Confirmation, email string, user *domain.User) OrderPlaced {
	ev := OrderPlaced{
		OrderNumber: c.OrderNumber,
		Email:       email,
		ItemCount:   c.ItemCount,
		Total:       c.Total,
		Lines:       make([]Line, 0, len(c.Items)),
		PlacedAt:    c.PlacedAt,
	}
	if user != nil {
		ev.UserID = user.ID
	}
	for _, item := range c.Items {
		ev.Lines = append(ev.Lines, Line{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
		})
	}
	return ev
}

type Publisher interface {
	Publish(ctx context.Context, ev OrderPlaced) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, OrderPlaced) error { return nil }
func (Nop) Close() error                               { return nil }
