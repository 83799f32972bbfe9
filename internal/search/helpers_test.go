package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fjod/go_skincare/internal/domain"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"café", "cafe", 1},
		{"serum", "serum", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshtein([]rune(tt.a), []rune(tt.b)))
			assert.Equal(t, tt.want, levenshtein([]rune(tt.b), []rune(tt.a)))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 1.0, similarity("Serum", "serum"))
	assert.InDelta(t, 1.0-1.0/9.0, similarity("hydragel", "Hydra Gel"), 0.0001)
	assert.True(t, fuzzyMatch("serun", "serum"))
	assert.False(t, fuzzyMatch("serum", "gentle cleanser"))
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  []domain.Span
	}{
		{
			name:  "no match",
			text:  "Gentle Cleanser",
			terms: []string{"serum"},
			want:  []domain.Span{{Text: "Gentle Cleanser"}},
		},
		{
			name:  "every occurrence ignoring case",
			text:  "Serum in a serum",
			terms: []string{"serum"},
			want: []domain.Span{
				{Text: "Serum", Highlighted: true},
				{Text: " in a "},
				{Text: "serum", Highlighted: true},
			},
		},
		{
			name:  "overlapping terms merge",
			text:  "Serum",
			terms: []string{"ser", "rum"},
			want:  []domain.Span{{Text: "Serum", Highlighted: true}},
		},
		{
			name:  "multibyte text",
			text:  "Crème Riche",
			terms: []string{"crème"},
			want: []domain.Span{
				{Text: "Crème", Highlighted: true},
				{Text: " Riche"},
			},
		},
		{
			name:  "empty text",
			text:  "",
			terms: []string{"a"},
			want:  []domain.Span{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, highlight(tt.text, tt.terms))
		})
	}
}

func TestHighlight_RenderEscapes(t *testing.T) {
	spans := highlight("AHA & BHA <peel>", []string{"bha"})
	assert.Equal(t, "AHA &amp; <b>BHA</b> &lt;peel&gt;", domain.RenderSpans(spans, "<b>", "</b>"))
}

func TestFilterOptions(t *testing.T) {
	e := New(fixtureCatalog())

	got := e.FilterOptions()
	assert.Equal(t, []string{"Cleanser", "Serum", "Treatment", "brightening", "daily", "vitamin c"}, got.Categories)
	assert.Equal(t, []string{"All", "Dry", "Normal", "Oily", "Sensitive"}, got.SkinTypes)
	assert.Equal(t, []string{"Acne", "Dark Spots", "Dryness", "Dullness", "Fine Lines"}, got.Concerns)
	assert.Equal(t, []string{"Ethyl Ascorbic Acid", "Oat Extract", "Retinol"}, got.Ingredients)
	assert.Equal(t, domain.PriceRange{Min: 399, Max: 949}, got.PriceRange)
}

func TestFilterOptions_EmptyCatalog(t *testing.T) {
	e := New(fixedCatalog{})

	got := e.FilterOptions()
	assert.Empty(t, got.Categories)
	assert.NotNil(t, got.Categories)
	assert.Equal(t, domain.PriceRange{}, got.PriceRange)
}

func TestSortOrders(t *testing.T) {
	e := New(fixtureCatalog())
	results := e.Search("a", nil)

	ids := func() []string { return resultIDs(results) }

	SortResults(results, SortPriceLow)
	assert.Equal(t, []string{"tso-003", "tso-001", "tso-006"}, ids())

	SortResults(results, SortPriceHigh)
	assert.Equal(t, []string{"tso-006", "tso-001", "tso-003"}, ids())

	SortResults(results, SortRating)
	assert.Equal(t, []string{"tso-001", "tso-003", "tso-006"}, ids())

	SortResults(results, SortName)
	assert.Equal(t, []string{"tso-001", "tso-003", "tso-006"}, ids())

	before := ids()
	SortResults(results, SortRelevance)
	assert.Equal(t, before, ids())
}

func TestSortProducts(t *testing.T) {
	products := fixtureCatalog().List()

	SortProducts(products, SortPriceHigh)
	assert.Equal(t, "tso-006", products[0].ID)
	assert.Equal(t, "tso-003", products[2].ID)
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseSortOrder("price-low"))
	assert.Equal(t, SortPriceHigh, ParseSortOrder(" PRICE-HIGH "))
	assert.Equal(t, SortRating, ParseSortOrder("rating"))
	assert.Equal(t, SortName, ParseSortOrder("name"))
	assert.Equal(t, SortRelevance, ParseSortOrder(""))
	assert.Equal(t, SortRelevance, ParseSortOrder("cheapest"))
}

func TestTrending(t *testing.T) {
	e := New(fixtureCatalog())

	got := e.Trending()
	assert.Len(t, got, 10)
	assert.Equal(t, "Vitamin C Serum", got[0])

	got[0] = "changed"
	assert.Equal(t, "Vitamin C Serum", e.Trending()[0])

	custom := New(fixtureCatalog(), WithTrending([]string{"SPF"}))
	assert.Equal(t, []string{"SPF"}, custom.Trending())
}
