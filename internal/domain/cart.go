package domain

import "github.com/shopspring/decimal"

// CartItem pairs a product snapshot with a requested quantity (>= 1).
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSnapshot is a point-in-time copy of a cart with its derived values.
type CartSnapshot struct {
	Items []CartItem      `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}
