package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopswift/internal/domain"
)

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func validInput() ProductInput {
	return ProductInput{
		Name:        "  Desk Lamp ",
		Description: "Warm light",
		Price:       "19.50",
		Category:    domain.CategoryHomeGarden,
		ImageURL:    "https://example.com/lamp.jpg",
	}
}

func TestBuiltinSeed(t *testing.T) {
	c := NewBuiltin()
	all := c.List(Filter{})
	require.Len(t, all, 8)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(all))

	speaker, err := c.Get("5")
	require.NoError(t, err)
	assert.Equal(t, "Portable Bluetooth Speaker", speaker.Name)
	assert.False(t, speaker.InStock)
	assert.True(t, decimal.RequireFromString("79.99").Equal(speaker.Price))

	assert.Equal(t, Stats{Total: 8, InStock: 7, OutOfStock: 1}, c.Stats())
}

func TestList_Filters(t *testing.T) {
	c := NewBuiltin()

	assert.Equal(t, []string{"1", "2", "5", "7"}, ids(c.List(Filter{Category: domain.CategoryElectronics})))
	assert.Len(t, c.List(Filter{Category: domain.CategoryAll}), 8)
	assert.Empty(t, c.List(Filter{Category: "Toys"}))

	assert.Equal(t, []string{"1", "5"}, ids(c.List(Filter{Query: "BLUETOOTH"})))
	assert.Equal(t, []string{"4"}, ids(c.List(Filter{Query: "cold for 24"})), "matches description")
	assert.Equal(t, []string{"5"}, ids(c.List(Filter{Category: domain.CategoryElectronics, Query: "speaker"})))
	assert.Empty(t, c.List(Filter{Category: domain.CategoryClothing, Query: "speaker"}))
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewBuiltin().Get("nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAdd_PrependsInStock(t *testing.T) {
	c := NewBuiltin(WithIDGenerator(func() string { return "new-1" }))

	p, err := c.Add(validInput())
	require.NoError(t, err)
	assert.Equal(t, "new-1", p.ID)
	assert.Equal(t, "Desk Lamp", p.Name)
	assert.True(t, p.InStock)
	assert.True(t, decimal.RequireFromString("19.5").Equal(p.Price))

	all := c.List(Filter{})
	require.Len(t, all, 9)
	assert.Equal(t, "new-1", all[0].ID)
	assert.Equal(t, 8, c.Stats().InStock)
}

func TestAdd_IgnoresCallerID(t *testing.T) {
	c := New(nil, WithIDGenerator(func() string { return "generated" }))
	in := validInput()
	in.ID = "1"
	p, err := c.Add(in)
	require.NoError(t, err)
	assert.Equal(t, "generated", p.ID)
}

func TestAdd_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ProductInput)
		field  string
		msg    string
	}{
		{"blank name", func(in *ProductInput) { in.Name = "   " }, "name", "Product name is required"},
		{"missing description", func(in *ProductInput) { in.Description = "" }, "description", "Description is required"},
		{"missing category", func(in *ProductInput) { in.Category = "" }, "category", "Category is required"},
		{"missing image", func(in *ProductInput) { in.ImageURL = "" }, "imageUrl", "Image URL is required"},
		{"bad image url", func(in *ProductInput) { in.ImageURL = "not a url" }, "imageUrl", "Must be a valid URL"},
		{"missing price", func(in *ProductInput) { in.Price = "" }, "price", "Price is required"},
		{"non numeric price", func(in *ProductInput) { in.Price = "abc" }, "price", "Price must be a valid number"},
		{"zero price", func(in *ProductInput) { in.Price = "0" }, "price", "Price must be positive"},
		{"negative price", func(in *ProductInput) { in.Price = "-3" }, "price", "Price must be positive"},
		{"sub cent price", func(in *ProductInput) { in.Price = "0.001" }, "price", "Price must be positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewBuiltin()
			in := validInput()
			tc.mutate(&in)

			_, err := c.Add(in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.msg, verr.Fields[tc.field])
			assert.Len(t, c.List(Filter{}), 8, "catalog must not change")
		})
	}
}

func TestRemove(t *testing.T) {
	c := NewBuiltin()
	require.NoError(t, c.Remove("3"))
	assert.NotContains(t, ids(c.List(Filter{})), "3")
	assert.True(t, errors.Is(c.Remove("3"), domain.ErrNotFound))
}

func TestToggleStock(t *testing.T) {
	c := NewBuiltin()
	p, err := c.ToggleStock("5")
	require.NoError(t, err)
	assert.True(t, p.InStock)
	assert.Equal(t, Stats{Total: 8, InStock: 8, OutOfStock: 0}, c.Stats())

	p, err = c.ToggleStock("5")
	require.NoError(t, err)
	assert.False(t, p.InStock)

	_, err = c.ToggleStock("missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	c := NewBuiltin(WithIDGenerator(func() string { return "gen" }))

	replaced, err := c.Upsert(ctx, domain.Product{ID: "2", Name: "Watch v2", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, "2", replaced.ID)
	got, _ := c.Get("2")
	assert.Equal(t, "Watch v2", got.Name)
	assert.Equal(t, "2", c.List(Filter{})[1].ID, "position kept")

	added, err := c.Upsert(ctx, domain.Product{Name: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, "gen", added.ID)
	all := c.List(Filter{})
	assert.Equal(t, "gen", all[len(all)-1].ID)
}

func TestUpsert_KeepsInsertionOrderAndLastWins(t *testing.T) {
	ctx := context.Background()
	c := New(nil)
	for _, p := range []domain.Product{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "a", Name: "A2"},
	} {
		_, err := c.Upsert(ctx, p)
		require.NoError(t, err)
	}

	all := c.List(Filter{})
	require.Len(t, all, 2)
	assert.Equal(t, "A2", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
}

func TestAdd_AcceptsOneCent(t *testing.T) {
	in := validInput()
	in.Price = "0.01"
	p, err := NewBuiltin().Add(in)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.01").Equal(p.Price))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, "All", NewBuiltin().Categories()[0])
	assert.Contains(t, NewBuiltin().Categories(), domain.CategoryHomeGarden)
}

func TestBuiltinProducts_ReturnsFreshCopy(t *testing.T) {
	a := BuiltinProducts()
	a[0].Name = "changed"
	assert.Equal(t, "Wireless Bluetooth Headphones", BuiltinProducts()[0].Name)
}
