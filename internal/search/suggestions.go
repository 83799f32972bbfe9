package search

import (
	"sort"
	"strings"

	"github.com/fjod/go_skincare/internal/domain"
)

const DefaultSuggestionLimit = 10

// tally counts values in first-seen order.
type tally struct {
	keys   []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(v string) {
	if _, ok := t.counts[v]; !ok {
		t.keys = append(t.keys, v)
	}
	t.counts[v]++
}

// Suggestions returns up to limit autocomplete entries whose text contains
// query, ignoring case. Product names come first in scan order, then
// categories and tags, hero ingredients and concerns, each deduplicated
// case-insensitively against everything before it. Entries starting with
// query sort ahead of the rest, then by count.
func (e *Engine) Suggestions(query string, limit int) []domain.SearchSuggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	if strings.TrimSpace(query) == "" {
		return []domain.SearchSuggestion{}
	}
	q := strings.ToLower(query)

	suggestions := make([]domain.SearchSuggestion, 0)
	seen := make(map[string]struct{})
	emit := func(text string, typ domain.SuggestionType, count int) {
		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, domain.SearchSuggestion{Text: text, Type: typ, Count: count})
	}

	for _, p := range e.products {
		if containsFold(p.Name, q) {
			emit(p.Name, domain.SuggestionProduct, 1)
		}
	}

	categories, ingredients, concerns := newTally(), newTally(), newTally()
	for _, p := range e.products {
		if containsFold(p.Category.Primary, q) {
			categories.add(p.Category.Primary)
		}
		for _, tag := range p.Category.Tags {
			if containsFold(tag, q) {
				categories.add(tag)
			}
		}
		for _, ing := range p.Ingredients.HeroIngredients {
			if containsFold(ing.Name, q) {
				ingredients.add(ing.Name)
			}
		}
		for _, c := range p.ConcernsAddressed {
			if containsFold(c, q) {
				concerns.add(c)
			}
		}
	}

	for _, group := range []struct {
		t   *tally
		typ domain.SuggestionType
	}{
		{categories, domain.SuggestionCategory},
		{ingredients, domain.SuggestionIngredient},
		{concerns, domain.SuggestionConcern},
	} {
		for _, k := range group.t.keys {
			emit(k, group.typ, group.t.counts[k])
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(suggestions[i].Text), q)
		pj := strings.HasPrefix(strings.ToLower(suggestions[j].Text), q)
		if pi != pj {
			return pi
		}
		return suggestions[i].Count > suggestions[j].Count
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
