package http

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/search"
)

// SearchObserver records search volume. *metrics.Metrics implements it.
type SearchObserver interface {
	ObserveSearch(kind string, results int)
}

type SearchHandler struct {
	engine   *search.Engine
	recent   *search.RecentSearches
	observer SearchObserver
	timeout  time.Duration
}

func NewSearchHandler(engine *search.Engine, recent *search.RecentSearches, observer SearchObserver, timeout time.Duration) *SearchHandler {
	return &SearchHandler{
		engine:   engine,
		recent:   recent,
		observer: observer,
		timeout:  timeout,
	}
}

type SearchResponse struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []domain.SearchResult `json:"results"`
}

// Search runs a full search. A non-blank query is remembered as a recent
// search of the session.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")

	filters, err := parseFilters(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	results := h.engine.Search(query, filters)
	search.SortResults(results, search.ParseSortOrder(q.Get("sort")))
	h.observe("full", len(results))

	if strings.TrimSpace(query) != "" {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		h.recent.Add(ctx, SessionFromContext(r.Context()), query)
		cancel()
	}

	respondJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}
	suggestions := h.engine.Suggestions(r.URL.Query().Get("q"), limit)
	h.observe("suggestions", len(suggestions))
	respondJSON(w, http.StatusOK, suggestions)
}

func (h *SearchHandler) Quick(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}
	products := h.engine.QuickSearch(r.URL.Query().Get("q"), limit)
	h.observe("quick", len(products))
	respondJSON(w, http.StatusOK, productViews(products))
}

func (h *SearchHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.FilterOptions())
}

func (h *SearchHandler) Trending(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Trending())
}

func (h *SearchHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	respondJSON(w, http.StatusOK, h.recent.List(ctx, SessionFromContext(r.Context())))
}

func (h *SearchHandler) ClearRecent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	h.recent.Clear(ctx, SessionFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *SearchHandler) observe(kind string, n int) {
	if h.observer != nil {
		h.observer.ObserveSearch(kind, n)
	}
}

// parseFilters builds search filters from query parameters. List filters
// accept repeated parameters and comma separated values. It returns nil when
// no filter is set.
func parseFilters(q url.Values) (*domain.SearchFilters, error) {
	f := &domain.SearchFilters{
		Categories:  listParam(q, "category"),
		SkinTypes:   listParam(q, "skin_type"),
		Concerns:    listParam(q, "concern"),
		Ingredients: listParam(q, "ingredient"),
	}
	active := len(f.Categories)+len(f.SkinTypes)+len(f.Concerns)+len(f.Ingredients) > 0

	minPrice, hasMin, err := floatParam(q, "min_price")
	if err != nil {
		return nil, err
	}
	maxPrice, hasMax, err := floatParam(q, "max_price")
	if err != nil {
		return nil, err
	}
	if hasMin || hasMax {
		if !hasMax {
			maxPrice = math.Inf(1)
		}
		if minPrice > maxPrice {
			return nil, errBadParam("min_price", "must not exceed max_price")
		}
		f.PriceRange = &domain.PriceRange{Min: minPrice, Max: maxPrice}
		active = true
	}

	if raw := q.Get("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errBadParam("in_stock", "must be a boolean")
		}
		f.InStock = inStock
		active = active || inStock
	}

	rating, hasRating, err := floatParam(q, "min_rating")
	if err != nil {
		return nil, err
	}
	if hasRating {
		f.MinRating = &rating
		active = true
	}

	if !active {
		return nil, nil
	}
	return f, nil
}

func listParam(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func floatParam(q url.Values, key string) (float64, bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0, false, errBadParam(key, "must be a non-negative number")
	}
	return v, true, nil
}

type paramError struct {
	key, msg string
}

func (e *paramError) Error() string {
	return e.key + " " + e.msg
}

func errBadParam(key, msg string) error {
	return &paramError{key: key, msg: msg}
}
