package cart

import (
	"github.com/shopspring/decimal"

	"github.com/fjod/go_skincare/internal/domain"
)

// Reduce returns the state after applying a to s. s is not modified. Total
// and ItemCount of the result are always recomputed from its items.
func Reduce(s domain.CartState, a Action) domain.CartState {
	next := domain.CartState{
		Items:  append(make([]domain.CartItem, 0, len(s.Items)+1), s.Items...),
		IsOpen: s.IsOpen,
	}

	switch a.Type {
	case ActionAddToCart:
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		item := a.Item
		item.ID = domain.CartLineID(item.ProductID, item.SKU)
		if i := indexOf(next.Items, item.ID); i >= 0 {
			// no upper bound on this path, only UpdateQuantity clamps
			next.Items[i].Quantity += qty
		} else {
			item.Quantity = qty
			next.Items = append(next.Items, item)
		}

	case ActionRemoveFromCart:
		next.Items = without(next.Items, a.ID)

	case ActionUpdateQuantity:
		i := indexOf(next.Items, a.ID)
		if i < 0 {
			break
		}
		if a.Quantity <= 0 {
			next.Items = without(next.Items, a.ID)
			break
		}
		next.Items[i].Quantity = min(a.Quantity, domain.MaxItemQuantity)

	case ActionClearCart:
		next.Items = []domain.CartItem{}

	case ActionToggleCart:
		next.IsOpen = !s.IsOpen
	case ActionOpenCart:
		next.IsOpen = true
	case ActionCloseCart:
		next.IsOpen = false
	}

	next.Total, next.ItemCount = totals(next.Items)
	return next
}

// totals returns the decimal sum of price x quantity and the unit count.
func totals(items []domain.CartItem) (float64, int) {
	sum := decimal.Zero
	count := 0
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	return sum.InexactFloat64(), count
}

func indexOf(items []domain.CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func without(items []domain.CartItem, id string) []domain.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// emptyState is the initial cart.
func emptyState() domain.CartState {
	return domain.CartState{Items: []domain.CartItem{}}
}
