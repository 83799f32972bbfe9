// Package cart holds the shopping cart state container: a pure reducer over
// domain.CartState, a Store that serializes dispatches, notifies subscribers
// and persists the cart, and a Registry of one store per shopper session.
package cart

import "github.com/fjod/go_skincare/internal/domain"

type ActionType string

const (
	ActionAddToCart      ActionType = "cart/addToCart"
	ActionRemoveFromCart ActionType = "cart/removeFromCart"
	ActionUpdateQuantity ActionType = "cart/updateQuantity"
	ActionClearCart      ActionType = "cart/clearCart"
	ActionToggleCart     ActionType = "cart/toggleCart"
	ActionOpenCart       ActionType = "cart/openCart"
	ActionCloseCart      ActionType = "cart/closeCart"
)

// Action is a cart mutation. Item is used by add, ID by remove and update,
// Quantity by add and update.
type Action struct {
	Type     ActionType
	Item     domain.CartItem
	ID       string
	Quantity int
}

// AddToCart adds quantity units of item. Quantities below 1 add one unit.
func AddToCart(item domain.CartItem, quantity int) Action {
	return Action{Type: ActionAddToCart, Item: item, Quantity: quantity}
}

func RemoveFromCart(id string) Action {
	return Action{Type: ActionRemoveFromCart, ID: id}
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func UpdateQuantity(id string, quantity int) Action {
	return Action{Type: ActionUpdateQuantity, ID: id, Quantity: quantity}
}

func ClearCart() Action  { return Action{Type: ActionClearCart} }
func ToggleCart() Action { return Action{Type: ActionToggleCart} }
func OpenCart() Action   { return Action{Type: ActionOpenCart} }
func CloseCart() Action  { return Action{Type: ActionCloseCart} }

// persists reports whether the action changes persisted state. Visibility
// actions never do.
func (a Action) persists() bool {
	switch a.Type {
	case ActionToggleCart, ActionOpenCart, ActionCloseCart:
		return false
	default:
		return true
	}
}
