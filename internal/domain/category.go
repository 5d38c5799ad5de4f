package domain

import "strings"

// Built-in categories. Products may also carry free-text categories.
const (
	CategoryAll         = "All"
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryHomeGarden  = "Home & Garden"
	CategoryAccessories = "Accessories"
	CategorySports      = "Sports"
)

// Categories lists the filter choices offered to clients, "All" first.
func Categories() []string {
	return []string{
		CategoryAll,
		CategoryElectronics,
		CategoryClothing,
		CategoryHomeGarden,
		CategoryAccessories,
		CategorySports,
	}
}

// MatchesCategory reports whether a product category satisfies filter.
// An empty filter or "All" matches everything.
func MatchesCategory(category, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == CategoryAll {
		return true
	}
	return category == filter
}
