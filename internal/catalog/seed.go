package catalog

import (
	"github.com/shopspring/decimal"

	"shopswift/internal/domain"
)

type productSeed struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
	ImageURL    string
	InStock     bool
}

var builtinSeed = []productSeed{
	{
		ID:          "1",
		Name:        "Wireless Bluetooth Headphones",
		Description: "High-quality wireless headphones with noise cancellation and long battery life. Perfect for music lovers and professionals.",
		Price:       "129.99",
		Category:    domain.CategoryElectronics,
		ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
		InStock:     true,
	},
	{
		ID:          "2",
		Name:        "Smart Fitness Watch",
		Description: "Advanced fitness tracking with heart rate monitor, GPS, and water resistance. Track your workouts and health metrics.",
		Price:       "199.99",
		Category:    domain.CategoryElectronics,
		ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop",
		InStock:     true,
	},
	{
		ID:          "3",
		Name:        "Organic Cotton T-Shirt",
		Description: "Comfortable and sustainable cotton t-shirt made from organic materials. Available in multiple colors and sizes.",
		Price:       "29.99",
		Category:    domain.CategoryClothing,
		ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=400&fit=crop",
		InStock:     true,
	},
	{
		ID:          "4",
		Name:        "Stainless Steel Water Bottle",
		Description: "Eco-friendly water bottle that keeps drinks cold for 24 hours and hot for 12 hours. Perfect for outdoor activities.",
		Price:       "24.99",
		Category:    domain.CategoryHomeGarden,
		ImageURL:    "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400&h=400&fit=crop",
		InStock:     true,
	},
	{
		ID:          "5",
		Name:        "Portable Bluetooth Speaker",
		Description: "Compact and powerful speaker with 360-degree sound. Waterproof design perfect for outdoor use.",
		Price:       "79.99",
		Category:    domain.CategoryElectronics,
		ImageURL:    "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=400&h=400&fit=crop",
		InStock:     false,
	},
	{
		ID:          "6",
		Name:        "Leather Wallet",
		Description: "Handcrafted genuine leather wallet with multiple card slots and RFID protection. Classic design for everyday use.",
		Price:       "49.99",
		Category:    domain.CategoryAccessories,
		ImageURL:    "https://images.unsplash.com/photo-1627123424574-724758594e93?w=400&h=400&fit=crop",
		InStock:     true,
	},
	{
		ID:          "7",
		Name:        "Wireless Charging Pad",
		Description: "Fast wireless charging pad compatible with all Qi-enabled devices. Sleek design with LED indicator.",
		Price:       "39.99",
		Category:    domain.CategoryElectronics,
		ImageURL:    "https://images.unsplash.com/photo-1586953208448-b95a79798f07?w=400&h=400&fit=crop",
		InStock:     true,
	},
	{
		ID:          "8",
		Name:        "Yoga Mat",
		Description: "Non-slip yoga mat made from eco-friendly materials. Perfect thickness for comfort during practice.",
		Price:       "34.99",
		Category:    domain.CategorySports,
		ImageURL:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=400&fit=crop",
		InStock:     true,
	},
}

// BuiltinProducts returns a fresh copy of the demo catalog.
func BuiltinProducts() []domain.Product {
	out := make([]domain.Product, 0, len(builtinSeed))
	for _, p := range builtinSeed {
		out = append(out, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       decimal.RequireFromString(p.Price),
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			InStock:     p.InStock,
		})
	}
	return out
}
