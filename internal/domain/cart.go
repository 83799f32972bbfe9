package domain

// MaxItemQuantity is the upper bound UpdateQuantity clamps a cart line to.
const MaxItemQuantity = 99

// CartItem is one cart line. ID is the composite of ProductID and SKU so the
// same product in two sizes occupies two lines.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category"`
	Size      string  `json:"size,omitempty"`
	SKU       string  `json:"sku"`
}

// CartLineID builds the composite cart line id.
func CartLineID(productID, sku string) string {
	return productID + "-" + sku
}

// CartState is the full cart as seen by subscribers. Total and ItemCount are
// derived from Items.
type CartState struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
	IsOpen    bool       `json:"isOpen"`
}
