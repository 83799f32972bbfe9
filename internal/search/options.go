package search

import (
	"sort"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/variant"
)

// FilterOptions collects the distinct filter values across the catalog,
// each list sorted, plus the range of resolved selling prices. An empty
// catalog yields a 0..0 price range.
func (e *Engine) FilterOptions() domain.FilterOptions {
	categories := make(map[string]struct{})
	skinTypes := make(map[string]struct{})
	concerns := make(map[string]struct{})
	ingredients := make(map[string]struct{})

	var prices domain.PriceRange
	for i, p := range e.products {
		categories[p.Category.Primary] = struct{}{}
		addAll(categories, p.Category.Secondary)
		addAll(categories, p.Category.Tags)
		addAll(skinTypes, p.SkinTypes)
		addAll(concerns, p.ConcernsAddressed)
		for _, ing := range p.Ingredients.HeroIngredients {
			ingredients[ing.Name] = struct{}{}
		}

		price := variant.SellingPrice(p, "")
		if i == 0 {
			prices = domain.PriceRange{Min: price, Max: price}
			continue
		}
		prices.Min = min(prices.Min, price)
		prices.Max = max(prices.Max, price)
	}

	return domain.FilterOptions{
		Categories:  sortedKeys(categories),
		SkinTypes:   sortedKeys(skinTypes),
		Concerns:    sortedKeys(concerns),
		Ingredients: sortedKeys(ingredients),
		PriceRange:  prices,
	}
}

func addAll(set map[string]struct{}, values []string) {
	for _, v := range values {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
