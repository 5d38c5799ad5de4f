package catalog

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"shopswift/internal/domain"
)

// minPrice is the smallest price an admin can set.
var minPrice = decimal.RequireFromString("0.01")

// ProductInput is the admin "add product" form. Price arrives as text so that
// malformed numbers are reported per field instead of as a decode failure.
type ProductInput struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Category    string `json:"category" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	InStock     *bool  `json:"inStock,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldNames = map[string]string{
	"Name":        "name",
	"Description": "description",
	"Price":       "price",
	"Category":    "category",
	"ImageURL":    "imageUrl",
}

var requiredMessages = map[string]string{
	"name":        "Product name is required",
	"description": "Description is required",
	"price":       "Price is required",
	"category":    "Category is required",
	"imageUrl":    "Image URL is required",
}

// Normalize trims every text field and validates the result. The returned
// product has no ID unless the input carried one.
func (in ProductInput) Normalize() (domain.Product, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Price = strings.TrimSpace(in.Price)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.Product{}, err
		}
		for _, fe := range verrs {
			name := fieldNames[fe.StructField()]
			switch fe.Tag() {
			case "required":
				fields[name] = requiredMessages[name]
			case "url":
				fields[name] = "Must be a valid URL"
			default:
				fields[name] = "Invalid value"
			}
		}
	}

	var price decimal.Decimal
	if _, bad := fields["price"]; !bad {
		p, err := decimal.NewFromString(in.Price)
		switch {
		case err != nil:
			fields["price"] = "Price must be a valid number"
		case p.LessThan(minPrice):
			fields["price"] = "Price must be positive"
		default:
			price = p
		}
	}

	if err := domain.NewValidationError(fields); err != nil {
		return domain.Product{}, err
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}
	return domain.Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		InStock:     inStock,
	}, nil
}
