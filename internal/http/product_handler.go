package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fjod/go_skincare/internal/catalog"
	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/search"
	"github.com/fjod/go_skincare/internal/variant"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// ProductView is a catalog product with its resolved price and stock.
type ProductView struct {
	*domain.Product
	CategoryKey    domain.CategoryKey `json:"category_key"`
	AvailableSizes []string           `json:"available_sizes"`
	ResolvedPrice  domain.Pricing     `json:"resolved_price"`
	InStock        bool               `json:"in_stock"`
	LowStock       bool               `json:"low_stock"`
}

func newProductView(p *domain.Product) ProductView {
	return ProductView{
		Product:        p,
		CategoryKey:    domain.CategoryKeyFor(p.Category.Primary),
		AvailableSizes: variant.AvailableSizes(p),
		ResolvedPrice:  variant.Price(p, ""),
		InStock:        variant.InStock(p, ""),
		LowStock:       variant.IsLowStock(p, ""),
	}
}

func productViews(products []*domain.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = newProductView(p)
	}
	return out
}

type PriceResponse struct {
	SKU   string         `json:"sku,omitempty"`
	Price domain.Pricing `json:"price"`
}

type StockResponse struct {
	SKU      string `json:"sku,omitempty"`
	InStock  bool   `json:"in_stock"`
	LowStock bool   `json:"low_stock"`
}

// List returns the catalog, optionally narrowed by ?category= and ordered
// by ?sort=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []*domain.Product
	if category := r.URL.Query().Get("category"); category != "" {
		products = h.catalog.ByCategory(category)
	} else {
		products = h.catalog.List()
	}
	search.SortProducts(products, search.ParseSortOrder(r.URL.Query().Get("sort")))

	respondJSON(w, http.StatusOK, productViews(products))
}

func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	count, ok := queryInt(r, "count")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_count", "count must be an integer")
		return
	}
	respondJSON(w, http.StatusOK, productViews(h.catalog.Featured(count)))
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Categories())
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newProductView(p))
}

// Price resolves the price of ?sku=, falling back to the default variant
// and the base record.
func (h *ProductHandler) Price(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}
	sku := r.URL.Query().Get("sku")
	respondJSON(w, http.StatusOK, PriceResponse{SKU: sku, Price: variant.Price(p, sku)})
}

func (h *ProductHandler) Stock(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}
	sku := r.URL.Query().Get("sku")
	respondJSON(w, http.StatusOK, StockResponse{
		SKU:      sku,
		InStock:  variant.InStock(p, sku),
		LowStock: variant.IsLowStock(p, sku),
	})
}

func (h *ProductHandler) product(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	slug := chi.URLParam(r, "slug")
	p, ok := h.catalog.BySlug(slug)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "no product with slug "+slug)
		return nil, false
	}
	return p, true
}
