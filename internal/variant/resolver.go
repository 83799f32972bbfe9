// Package variant resolves price, stock and size for a product through
// variant -> default variant -> product base record, so callers never have to
// check whether a product has variants.
package variant

import "github.com/fjod/go_skincare/internal/domain"

// Default returns the first variant of p.
func Default(p *domain.Product) (domain.Variant, bool) {
	if !p.HasVariants() {
		return domain.Variant{}, false
	}
	return p.Variants[0], true
}

func BySKU(p *domain.Product, sku string) (domain.Variant, bool) {
	for _, v := range p.Variants {
		if v.SKU == sku {
			return v, true
		}
	}
	return domain.Variant{}, false
}

func BySize(p *domain.Product, size string) (domain.Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// Price returns the pricing of the variant named by sku, falling back to the
// default variant and then to the product's base pricing. An unknown sku is
// not an error.
func Price(p *domain.Product, sku string) domain.Pricing {
	if sku != "" {
		if v, ok := BySKU(p, sku); ok {
			return v.Price
		}
	}
	if v, ok := Default(p); ok {
		return v.Price
	}
	return p.Pricing
}

// SellingPrice is shorthand for Price(p, sku).SellingPrice.
func SellingPrice(p *domain.Product, sku string) float64 {
	return Price(p, sku).SellingPrice
}

func AvailableSizes(p *domain.Product) []string {
	if !p.HasVariants() {
		return []string{p.Size}
	}
	sizes := make([]string, len(p.Variants))
	for i, v := range p.Variants {
		sizes[i] = v.Size
	}
	return sizes
}

// InStock reports whether the resolved record has status in_stock and a
// positive quantity. A sku that names no variant of a product with variants
// is out of stock.
func InStock(p *domain.Product, sku string) bool {
	inv, ok := resolveInventory(p, sku)
	if !ok {
		return false
	}
	return inv.Status == domain.StatusInStock && inv.StockQuantity > 0
}

// IsLowStock reports whether the resolved quantity is positive but at or
// below the low stock threshold.
func IsLowStock(p *domain.Product, sku string) bool {
	inv, ok := resolveInventory(p, sku)
	if !ok {
		return false
	}
	return inv.StockQuantity > 0 && inv.StockQuantity <= inv.LowStockThreshold
}

func resolveInventory(p *domain.Product, sku string) (domain.Inventory, bool) {
	if sku != "" && p.HasVariants() {
		v, ok := BySKU(p, sku)
		if !ok {
			return domain.Inventory{}, false
		}
		return v.Inventory, true
	}
	if v, ok := Default(p); ok {
		return v.Inventory, true
	}
	if p.Inventory == (domain.Inventory{}) {
		return domain.Inventory{}, false
	}
	return p.Inventory, true
}
