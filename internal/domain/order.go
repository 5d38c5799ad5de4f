package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutForm carries the shipping and payment fields of the checkout screen.
type CheckoutForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// Confirmation describes a placed order. It is returned to the client and
// announced to listeners but never stored.
type Confirmation struct {
	OrderNumber string          `json:"orderNumber"`
	ItemCount   int             `json:"itemCount"`
	Total       decimal.Decimal `json:"total"`
	Items       []CartItem      `json:"items"`
	PlacedAt    time.Time       `json:"placedAt"`
}
