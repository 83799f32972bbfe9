package domain

import (
	"html"
	"strings"
)

// SuggestionType tags where an autocomplete suggestion came from.
type SuggestionType string

const (
	SuggestionProduct    SuggestionType = "product"
	SuggestionCategory   SuggestionType = "category"
	SuggestionIngredient SuggestionType = "ingredient"
	SuggestionConcern    SuggestionType = "concern"
)

// Span is a piece of a highlighted field. Concatenating the Text of all
// spans of a field yields the original field text.
type Span struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

type SearchResult struct {
	Product       *Product          `json:"product"`
	Score         float64           `json:"score"`
	MatchedFields []string          `json:"matched_fields"`
	Highlights    map[string][]Span `json:"highlights"`
}

type SearchSuggestion struct {
	Text  string         `json:"text"`
	Type  SuggestionType `json:"type"`
	Count int            `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchFilters narrows a search. Nil pointers, false and empty slices are
// inactive.
type SearchFilters struct {
	Categories  []string    `json:"categories,omitempty"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	SkinTypes   []string    `json:"skin_types,omitempty"`
	Concerns    []string    `json:"concerns,omitempty"`
	Ingredients []string    `json:"ingredients,omitempty"`
	InStock     bool        `json:"in_stock,omitempty"`
	MinRating   *float64    `json:"min_rating,omitempty"`
}

type FilterOptions struct {
	Categories  []string   `json:"categories"`
	SkinTypes   []string   `json:"skin_types"`
	Concerns    []string   `json:"concerns"`
	Ingredients []string   `json:"ingredients"`
	PriceRange  PriceRange `json:"price_range"`
}

// RenderSpans joins spans into a string, HTML-escaping text and wrapping
// highlighted spans with open and close.
func RenderSpans(spans []Span, open, close string) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Highlighted {
			b.WriteString(open)
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString(close)
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	return b.String()
}
