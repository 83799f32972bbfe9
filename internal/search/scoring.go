package search

import (
	"strings"

	"github.com/fjod/go_skincare/internal/domain"
)

// Field weights, added once per matching term (and per matching element for
// list fields).
const (
	WeightName             = 100
	WeightFuzzyName        = 80
	WeightTagline          = 60
	WeightShortDescription = 40
	WeightLongDescription  = 20
	WeightTag              = 30
	WeightConcern          = 35
	WeightSkinType         = 25
	WeightIngredient       = 30
	WeightKeyword          = 15

	RatingBoostFactor = 5
	VariantBoost      = 10
)

// Matched field names reported in SearchResult.MatchedFields.
const (
	FieldName        = "name"
	FieldTagline     = "tagline"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldConcerns    = "concerns"
	FieldSkinTypes   = "skinTypes"
	FieldIngredients = "ingredients"
	FieldKeywords    = "keywords"
)

// scorer accumulates the matches of one product.
type scorer struct {
	product   *domain.Product
	text      float64
	fields    []string
	seen      map[string]struct{}
	hlTerms   map[string][]string
	descField string
}

func newScorer(p *domain.Product) *scorer {
	return &scorer{
		product: p,
		seen:    make(map[string]struct{}, 4),
		hlTerms: make(map[string][]string, 3),
	}
}

func (s *scorer) mark(field string) {
	if _, ok := s.seen[field]; ok {
		return
	}
	s.seen[field] = struct{}{}
	s.fields = append(s.fields, field)
}

func (s *scorer) highlightTerm(field, term string) {
	s.hlTerms[field] = append(s.hlTerms[field], term)
}

// scoreTerm adds the weights of every field matching term. term is already
// lowercased.
func (s *scorer) scoreTerm(term string) {
	p := s.product

	if containsFold(p.Name, term) {
		s.text += WeightName
		s.mark(FieldName)
		s.highlightTerm(FieldName, term)
	} else if fuzzyMatch(term, p.Name) {
		s.text += WeightFuzzyName
		s.mark(FieldName)
		s.highlightTerm(FieldName, term)
	}

	if containsFold(p.Tagline, term) {
		s.text += WeightTagline
		s.mark(FieldTagline)
		s.highlightTerm(FieldTagline, term)
	}

	if containsFold(p.ShortDescription, term) {
		s.text += WeightShortDescription
		s.matchDescription(p.ShortDescription, term)
	} else if containsFold(p.LongDescription, term) {
		s.text += WeightLongDescription
		s.matchDescription(p.LongDescription, term)
	}

	for _, tag := range p.Category.Tags {
		if containsFold(tag, term) {
			s.text += WeightTag
			s.mark(FieldTags)
		}
	}
	for _, concern := range p.ConcernsAddressed {
		if containsFold(concern, term) {
			s.text += WeightConcern
			s.mark(FieldConcerns)
		}
	}
	for _, skinType := range p.SkinTypes {
		if containsFold(skinType, term) {
			s.text += WeightSkinType
			s.mark(FieldSkinTypes)
		}
	}
	for _, ing := range p.Ingredients.HeroIngredients {
		if containsFold(ing.Name, term) || containsFold(ing.Benefit, term) {
			s.text += WeightIngredient
			s.mark(FieldIngredients)
		}
	}
	for _, kw := range p.SEO.Keywords {
		if containsFold(kw, term) {
			s.text += WeightKeyword
			s.mark(FieldKeywords)
		}
	}
}

// matchDescription records a description hit. The first description text
// that matched is the one highlighted for the rest of the query.
func (s *scorer) matchDescription(text, term string) {
	s.mark(FieldDescription)
	if s.descField == "" {
		s.descField = text
	}
	s.highlightTerm(FieldDescription, term)
}

// result returns the scored result, or false when no term matched any field.
func (s *scorer) result() (domain.SearchResult, bool) {
	if s.text == 0 {
		return domain.SearchResult{}, false
	}

	p := s.product
	score := s.text + p.Reviews.AverageRating*RatingBoostFactor
	if p.HasVariants() {
		score += VariantBoost
	}

	highlights := make(map[string][]domain.Span, len(s.hlTerms))
	for field, terms := range s.hlTerms {
		var src string
		switch field {
		case FieldName:
			src = p.Name
		case FieldTagline:
			src = p.Tagline
		case FieldDescription:
			src = s.descField
		}
		highlights[field] = highlight(src, terms)
	}

	return domain.SearchResult{
		Product:       p,
		Score:         score,
		MatchedFields: s.fields,
		Highlights:    highlights,
	}, true
}

func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}

// splitTerms lowercases query and splits it on whitespace.
func splitTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}
