package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fjod/go_skincare/internal/cart"
	"github.com/fjod/go_skincare/internal/catalog"
	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/variant"
)

type CartHandler struct {
	carts   *cart.Registry
	catalog *catalog.Catalog
	timeout time.Duration
}

func NewCartHandler(carts *cart.Registry, c *catalog.Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: c,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.store(ctx).State())
}

// AddItem resolves the line from the catalog and adds it. An empty sku
// selects the default variant, or the product itself when it has none.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 0 || req.Quantity > domain.MaxItemQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	p, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "no product with id "+req.ProductID)
		return
	}

	item, ok := cartItemFor(p, req.SKU)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_sku", "product has no variant "+req.SKU)
		return
	}
	if !variant.InStock(p, item.SKU) {
		respondError(w, http.StatusConflict, "out_of_stock", item.Name+" is out of stock")
		return
	}

	respondJSON(w, http.StatusCreated, h.store(ctx).AddToCart(ctx, item, req.Quantity))
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line and
// values above 99 are clamped.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	id := chi.URLParam(r, "id")
	respondJSON(w, http.StatusOK, h.store(ctx).UpdateQuantity(ctx, id, req.Quantity))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	respondJSON(w, http.StatusOK, h.store(ctx).RemoveFromCart(ctx, id))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.store(ctx).ClearCart(ctx))
}

func (h *CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store(r.Context()).ToggleCart(r.Context()))
}

func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store(r.Context()).OpenCart(r.Context()))
}

func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store(r.Context()).CloseCart(r.Context()))
}

func (h *CartHandler) store(ctx context.Context) *cart.Store {
	return h.carts.Get(ctx, SessionFromContext(ctx))
}

// cartItemFor builds the cart line for sku of p. ok is false when p has
// variants and sku names none of them.
func cartItemFor(p *domain.Product, sku string) (domain.CartItem, bool) {
	item := domain.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Images.Primary,
		Category:  p.Category.Primary,
	}

	if !p.HasVariants() {
		item.SKU = p.SKU
		item.Size = p.Size
		item.Price = p.Pricing.SellingPrice
		return item, sku == "" || sku == p.SKU
	}

	v, ok := variant.Default(p)
	if sku != "" {
		v, ok = variant.BySKU(p, sku)
	}
	if !ok {
		return domain.CartItem{}, false
	}
	item.SKU = v.SKU
	item.Size = v.Size
	item.Price = variant.SellingPrice(p, v.SKU)
	return item, true
}
