package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, slug, primary string, rating float64) domain.Product {
	return domain.Product{
		ID:   id,
		SKU:  "SKU-" + id,
		Name: "Product " + id,
		Slug: slug,
		Category: domain.Category{
			Primary:   primary,
			Secondary: []string{},
			Tags:      []string{},
		},
		Ingredients: domain.Ingredients{
			HeroIngredients: []domain.HeroIngredient{},
			CompleteINCI:    []string{},
		},
		SkinTypes:         []string{},
		ConcernsAddressed: []string{},
		SEO:               domain.SEO{Keywords: []string{}},
		Reviews:           domain.Reviews{AverageRating: rating, ReviewHighlights: []string{}},
	}
}

func TestLoad_BundledCatalog(t *testing.T) {
	c, err := Load(context.Background(), NewJSONSource(""))
	require.NoError(t, err)

	assert.Equal(t, 6, c.Len())
	p, ok := c.BySlug("brightening-vitamin-c-serum")
	require.True(t, ok)
	assert.Equal(t, "tso-001", p.ID)
	assert.Len(t, p.Variants, 2)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	doc := `[{"id":"x1","sku":"X1","name":"X","slug":"x",
		"category":{"primary":"Serum","secondary":[],"tags":[]},
		"ingredients":{"hero_ingredients":[],"complete_inci":[]},
		"skin_types":[],"concerns_addressed":[],"seo":{"keywords":[]},
		"reviews":{"average_rating":4,"total_reviews":1,"review_highlights":[]}}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(context.Background(), NewJSONSource(path))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoad_MissingArrayFieldIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	doc := `[{"id":"x1","sku":"X1","name":"X","slug":"x",
		"category":{"primary":"Serum","secondary":[]},
		"ingredients":{"hero_ingredients":[],"complete_inci":[]},
		"skin_types":[],"concerns_addressed":[],"seo":{"keywords":[]},
		"reviews":{"average_rating":4,"total_reviews":1,"review_highlights":[]}}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(context.Background(), NewJSONSource(path))
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.ErrorContains(t, err, "Tags")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), NewJSONSource("/does/not/exist.json"))
	assert.ErrorContains(t, err, "failed to open catalog file")
}

func TestLoad_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":`), 0o600))

	_, err := Load(context.Background(), NewJSONSource(path))
	assert.ErrorContains(t, err, "failed to decode catalog")
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]domain.Product{
		product("1", "same", "Serum", 4),
		product("2", "same", "Serum", 4),
	})
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	_, err = New([]domain.Product{
		product("1", "a", "Serum", 4),
		product("1", "b", "Serum", 4),
	})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNew_RejectsOutOfRangeRating(t *testing.T) {
	_, err := New([]domain.Product{product("1", "a", "Serum", 7)})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestQueries(t *testing.T) {
	c, err := New([]domain.Product{
		product("1", "one", "Serum", 4.6),
		product("2", "two", "Cleanser", 4.9),
		product("3", "three", "serum", 4.2),
		product("4", "four", "Moisturizer", 4.5),
		product("5", "five", "Serum", 4.9),
	})
	require.NoError(t, err)

	assert.Len(t, c.List(), 5)

	p, ok := c.ByID("3")
	require.True(t, ok)
	assert.Equal(t, "three", p.Slug)

	_, ok = c.BySlug("missing")
	assert.False(t, ok)

	serums := c.ByCategory("SERUM")
	require.Len(t, serums, 3)
	assert.Equal(t, "1", serums[0].ID)
	assert.Equal(t, "3", serums[1].ID)

	assert.Equal(t, []string{"Serum", "Cleanser", "serum", "Moisturizer"}, c.Categories())

	featured := c.Featured(3)
	require.Len(t, featured, 3)
	assert.Equal(t, "2", featured[0].ID)
	assert.Equal(t, "5", featured[1].ID, "ties keep catalog order")
	assert.Equal(t, "1", featured[2].ID)

	all := c.Featured(0)
	assert.Len(t, all, 4, "rating 4.5 is inclusive, 4.2 is excluded")
}
