package search

import (
	"unicode"

	"github.com/fjod/go_skincare/internal/domain"
)

// lowerRunes lowercases rune by rune so indexes line up with []rune(s).
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// highlight splits text into spans, marking every case-insensitive
// occurrence of any of terms. Overlapping and adjacent occurrences merge
// into one highlighted span.
func highlight(text string, terms []string) []domain.Span {
	original := []rune(text)
	if len(original) == 0 {
		return []domain.Span{}
	}
	lower := lowerRunes(text)

	mask := make([]bool, len(original))
	for _, term := range terms {
		needle := lowerRunes(term)
		if len(needle) == 0 || len(needle) > len(lower) {
			continue
		}
		for i := 0; i+len(needle) <= len(lower); i++ {
			if runesEqual(lower[i:i+len(needle)], needle) {
				for j := i; j < i+len(needle); j++ {
					mask[j] = true
				}
			}
		}
	}

	spans := make([]domain.Span, 0, 3)
	start := 0
	for i := 1; i <= len(original); i++ {
		if i == len(original) || mask[i] != mask[start] {
			spans = append(spans, domain.Span{
				Text:        string(original[start:i]),
				Highlighted: mask[start],
			})
			start = i
		}
	}
	return spans
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
