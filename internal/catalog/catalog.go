package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fjod/go_skincare/internal/domain"
)

const (
	// FeaturedMinRating is the lowest average rating a featured product has.
	FeaturedMinRating = 4.5
	// DefaultFeaturedCount is used when Featured is asked for count <= 0.
	DefaultFeaturedCount = 6
)

// Catalog is the immutable product list loaded at startup. Returned
// products point into the catalog and must be treated as read-only.
type Catalog struct {
	products []domain.Product
	bySlug   map[string]int
	byID     map[string]int
}

// Source provides catalog records. Implementations are read once at startup.
type Source interface {
	Load(ctx context.Context) ([]domain.Product, error)
}

// Load reads products from src and builds a validated catalog. Any invalid
// record fails the whole load.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return New(products)
}

// New validates products and indexes them by slug and id.
func New(products []domain.Product) (*Catalog, error) {
	if err := Validate(products); err != nil {
		return nil, err
	}

	c := &Catalog{
		products: products,
		bySlug:   make(map[string]int, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i := range products {
		c.bySlug[products[i].Slug] = i
		c.byID[products[i].ID] = i
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// List returns every product in catalog order.
func (c *Catalog) List() []*domain.Product {
	out := make([]*domain.Product, len(c.products))
	for i := range c.products {
		out[i] = &c.products[i]
	}
	return out
}

func (c *Catalog) BySlug(slug string) (*domain.Product, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}

func (c *Catalog) ByID(id string) (*domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}

// ByCategory returns products whose primary category equals category,
// ignoring case.
func (c *Catalog) ByCategory(category string) []*domain.Product {
	out := make([]*domain.Product, 0)
	for i := range c.products {
		if strings.EqualFold(c.products[i].Category.Primary, category) {
			out = append(out, &c.products[i])
		}
	}
	return out
}

// Categories returns the distinct primary categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range c.products {
		primary := c.products[i].Category.Primary
		if _, ok := seen[primary]; ok {
			continue
		}
		seen[primary] = struct{}{}
		out = append(out, primary)
	}
	return out
}

// Featured returns up to count products rated FeaturedMinRating or higher,
// best rated first.
func (c *Catalog) Featured(count int) []*domain.Product {
	if count <= 0 {
		count = DefaultFeaturedCount
	}

	out := make([]*domain.Product, 0)
	for i := range c.products {
		if c.products[i].Reviews.AverageRating >= FeaturedMinRating {
			out = append(out, &c.products[i])
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Reviews.AverageRating > out[b].Reviews.AverageRating
	})

	if len(out) > count {
		out = out[:count]
	}
	return out
}
