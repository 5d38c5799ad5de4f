package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Price is never negative.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	InStock     bool            `json:"inStock"`
}
