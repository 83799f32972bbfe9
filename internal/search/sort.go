package search

import (
	"sort"
	"strings"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/variant"
)

// SortOrder is a listing order offered to shoppers.
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
	SortName      SortOrder = "name"
)

// ParseSortOrder maps s to a SortOrder. Unknown values mean relevance.
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortPriceLow, SortPriceHigh, SortRating, SortName:
		return o
	default:
		return SortRelevance
	}
}

// SortResults reorders results in place. Relevance keeps the current order;
// every order is stable.
func SortResults(results []domain.SearchResult, order SortOrder) {
	less := lessFor(order)
	if less == nil {
		return
	}
	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i].Product, results[j].Product)
	})
}

// SortProducts reorders products in place, like SortResults.
func SortProducts(products []*domain.Product, order SortOrder) {
	less := lessFor(order)
	if less == nil {
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

func lessFor(order SortOrder) func(a, b *domain.Product) bool {
	switch order {
	case SortPriceLow:
		return func(a, b *domain.Product) bool {
			return variant.SellingPrice(a, "") < variant.SellingPrice(b, "")
		}
	case SortPriceHigh:
		return func(a, b *domain.Product) bool {
			return variant.SellingPrice(a, "") > variant.SellingPrice(b, "")
		}
	case SortRating:
		return func(a, b *domain.Product) bool {
			return a.Reviews.AverageRating > b.Reviews.AverageRating
		}
	case SortName:
		return func(a, b *domain.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	default:
		return nil
	}
}
