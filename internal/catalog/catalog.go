// Package catalog serves the product list. Admin mutations are kept in
// process memory only.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopswift/internal/domain"
	"shopswift/internal/logging"
)

// Filter narrows List. Both fields are optional.
type Filter struct {
	Category string
	Query    string
}

// Stats summarises stock levels for the admin dashboard.
type Stats struct {
	Total      int `json:"total"`
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
	logger   *zap.Logger
	newID    func() string
}

type Option func(*Catalog)

func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

func WithIDGenerator(fn func() string) Option {
	return func(c *Catalog) { c.newID = fn }
}

// New returns a catalog holding a copy of products in the given order.
func New(products []domain.Product, opts ...Option) *Catalog {
	c := &Catalog{
		products: append([]domain.Product(nil), products...),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrNop(c.logger).Named("catalog")
	return c
}

// NewBuiltin returns a catalog seeded with the demo products.
func NewBuiltin(opts ...Option) *Catalog {
	return New(BuiltinProducts(), opts...)
}

// List returns the products matching f in catalog order. The category must
// match exactly unless it is empty or "All"; the query is a case-insensitive
// substring of the name or the description.
func (c *Catalog) List(f Filter) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if !domain.MatchesCategory(p.Category, f.Category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.products[i], nil
	}
	return domain.Product{}, domain.ErrNotFound
}

// Add validates in and puts the new product at the front of the catalog with
// a fresh id. New products are in stock unless the input says otherwise.
func (c *Catalog) Add(in ProductInput) (domain.Product, error) {
	in.ID = ""
	p, err := in.Normalize()
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = c.newID()

	c.mu.Lock()
	c.products = append([]domain.Product{p}, c.products...)
	c.mu.Unlock()

	c.logger.Info("product added", zap.String("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// Upsert replaces the product with the same id in place, or appends it when
// the id is new or empty. Upserting a file row by row keeps file order and the
// last row with a given id wins.
func (c *Catalog) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = c.newID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(p.ID); i >= 0 {
		c.products[i] = p
	} else {
		c.products = append(c.products, p)
	}
	return &p, nil
}

func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.products = append(c.products[:i], c.products[i+1:]...)
	c.logger.Info("product removed", zap.String("id", id))
	return nil
}

// ToggleStock flips the in-stock flag and returns the updated product.
func (c *Catalog) ToggleStock(id string) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	c.products[i].InStock = !c.products[i].InStock
	return c.products[i], nil
}

func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Stats{Total: len(c.products)}
	for _, p := range c.products {
		if p.InStock {
			s.InStock++
		}
	}
	s.OutOfStock = s.Total - s.InStock
	return s
}

// Categories lists the category filter choices, "All" first.
func (c *Catalog) Categories() []string {
	return domain.Categories()
}

func (c *Catalog) indexOf(id string) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
