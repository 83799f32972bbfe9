package search

import (
	"slices"
	"strings"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/variant"
)

// matchesFilters reports whether p passes every active filter. A nil filter
// set passes everything.
func matchesFilters(p *domain.Product, f *domain.SearchFilters) bool {
	if f == nil {
		return true
	}

	if len(f.Categories) > 0 && !slices.ContainsFunc(f.Categories, func(c string) bool {
		return strings.EqualFold(c, p.Category.Primary)
	}) {
		return false
	}

	if f.PriceRange != nil {
		price := variant.SellingPrice(p, "")
		if price < f.PriceRange.Min || price > f.PriceRange.Max {
			return false
		}
	}

	if len(f.SkinTypes) > 0 && !slices.ContainsFunc(f.SkinTypes, func(t string) bool {
		return slices.Contains(p.SkinTypes, t)
	}) {
		return false
	}

	if len(f.Concerns) > 0 && !slices.ContainsFunc(f.Concerns, func(c string) bool {
		return anyContainsFold(p.ConcernsAddressed, strings.ToLower(c))
	}) {
		return false
	}

	if len(f.Ingredients) > 0 && !slices.ContainsFunc(f.Ingredients, func(ing string) bool {
		return hasIngredient(p, strings.ToLower(ing))
	}) {
		return false
	}

	if f.InStock && !variant.InStock(p, "") {
		return false
	}

	if f.MinRating != nil && p.Reviews.AverageRating < *f.MinRating {
		return false
	}

	return true
}

func hasIngredient(p *domain.Product, lowerName string) bool {
	for _, hero := range p.Ingredients.HeroIngredients {
		if containsFold(hero.Name, lowerName) {
			return true
		}
	}
	return anyContainsFold(p.Ingredients.CompleteINCI, lowerName)
}

func anyContainsFold(values []string, lowerSubstr string) bool {
	for _, v := range values {
		if containsFold(v, lowerSubstr) {
			return true
		}
	}
	return false
}
