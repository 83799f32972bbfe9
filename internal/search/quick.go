package search

import (
	"sort"
	"strings"

	"github.com/fjod/go_skincare/internal/domain"
)

const DefaultQuickLimit = 5

// Quick search weights.
const (
	QuickWeightNamePrefix = 100
	QuickWeightName       = 80
	QuickWeightTagline    = 60
	QuickWeightCategory   = 40
)

// QuickSearch is the cheap instant-results ranking: the whole query is
// matched against name, tagline and primary category, plus the rating
// boost. Only products whose total score is zero are left out, so rated
// products fill the list when few names match.
func (e *Engine) QuickSearch(query string, limit int) []*domain.Product {
	if limit <= 0 {
		limit = DefaultQuickLimit
	}
	if strings.TrimSpace(query) == "" {
		return []*domain.Product{}
	}
	q := strings.ToLower(query)

	type hit struct {
		product *domain.Product
		score   float64
	}
	hits := make([]hit, 0)
	for _, p := range e.products {
		var score float64
		name := strings.ToLower(p.Name)
		if strings.HasPrefix(name, q) {
			score += QuickWeightNamePrefix
		} else if strings.Contains(name, q) {
			score += QuickWeightName
		}
		if containsFold(p.Tagline, q) {
			score += QuickWeightTagline
		}
		if containsFold(p.Category.Primary, q) {
			score += QuickWeightCategory
		}
		score += p.Reviews.AverageRating * RatingBoostFactor
		if score <= 0 {
			continue
		}
		hits = append(hits, hit{p, score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]*domain.Product, len(hits))
	for i, h := range hits {
		out[i] = h.product
	}
	return out
}
