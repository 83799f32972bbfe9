// Package search ranks catalog products against free-text queries and
// structured filters, and produces autocomplete suggestions, quick results,
// filter options and trending terms. An Engine holds no mutable state and is
// safe for concurrent use.
package search

import (
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/pkg/logger"
)

// DefaultParallelThreshold is the catalog size from which Search scores
// products on several goroutines.
const DefaultParallelThreshold = 512

// Catalog is the read-only product list the engine searches.
type Catalog interface {
	List() []*domain.Product
}

type Engine struct {
	products          []*domain.Product
	workers           int
	parallelThreshold int
	trending          []string
	log               *slog.Logger
}

type Option func(*Engine)

// WithWorkers caps the goroutines used for parallel scoring.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func WithParallelThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelThreshold = n
		}
	}
}

// WithTrending replaces the default trending terms.
func WithTrending(terms []string) Option {
	return func(e *Engine) {
		e.trending = append([]string(nil), terms...)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New builds an engine over a snapshot of c.
func New(c Catalog, opts ...Option) *Engine {
	e := &Engine{
		products:          c.List(),
		workers:           runtime.GOMAXPROCS(0),
		parallelThreshold: DefaultParallelThreshold,
		trending:          DefaultTrending,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logger.OrDefault(e.log)
	return e
}

// Search scores every product passing filters against query and returns the
// matches best first. Products with no text match are never returned, so
// filters alone select nothing. Equal scores keep catalog order.
func (e *Engine) Search(query string, filters *domain.SearchFilters) []domain.SearchResult {
	terms := splitTerms(query)
	if len(terms) == 0 {
		return []domain.SearchResult{}
	}

	var scored []*domain.SearchResult
	if len(e.products) >= e.parallelThreshold && e.workers > 1 {
		scored = e.scoreParallel(terms, filters)
	} else {
		scored = e.scoreRange(e.products, terms, filters)
	}

	results := make([]domain.SearchResult, 0, len(scored))
	for _, r := range scored {
		if r != nil {
			results = append(results, *r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	e.log.Debug("search completed",
		slog.String("query", query),
		slog.Int("results", len(results)))
	return results
}

// scoreRange scores products in order. The returned slice is aligned with
// products; nil entries did not match.
func (e *Engine) scoreRange(products []*domain.Product, terms []string, filters *domain.SearchFilters) []*domain.SearchResult {
	out := make([]*domain.SearchResult, len(products))
	for i, p := range products {
		out[i] = scoreProduct(p, terms, filters)
	}
	return out
}

// scoreParallel splits the catalog into contiguous chunks scored
// concurrently. Chunks write into disjoint parts of the output, which keeps
// catalog order for the stable sort.
func (e *Engine) scoreParallel(terms []string, filters *domain.SearchFilters) []*domain.SearchResult {
	out := make([]*domain.SearchResult, len(e.products))
	chunk := (len(e.products) + e.workers - 1) / e.workers

	var g errgroup.Group
	g.SetLimit(e.workers)
	for start := 0; start < len(e.products); start += chunk {
		end := min(start+chunk, len(e.products))
		g.Go(func() error {
			copy(out[start:end], e.scoreRange(e.products[start:end], terms, filters))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func scoreProduct(p *domain.Product, terms []string, filters *domain.SearchFilters) *domain.SearchResult {
	if !matchesFilters(p, filters) {
		return nil
	}
	s := newScorer(p)
	for _, term := range terms {
		s.scoreTerm(term)
	}
	r, ok := s.result()
	if !ok {
		return nil
	}
	return &r
}
