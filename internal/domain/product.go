package domain

// InventoryStatus values used by the catalog data.
const (
	StatusInStock    = "in_stock"
	StatusOutOfStock = "out_of_stock"
	StatusLowStock   = "low_stock"
)

type Pricing struct {
	MRP                float64 `json:"mrp" validate:"gte=0"`
	SellingPrice       float64 `json:"selling_price" validate:"gte=0"`
	DiscountPercentage float64 `json:"discount_percentage" validate:"gte=0,lte=100"`
}

type Inventory struct {
	StockQuantity     int    `json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
	Status            string `json:"status"`
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type VariantShipping struct {
	WeightGrams float64    `json:"weight_grams"`
	Dimensions  Dimensions `json:"dimensions_cm"`
}

// Variant is a purchasable size of a product with its own price and stock.
type Variant struct {
	ID        string          `json:"id" validate:"required"`
	SKU       string          `json:"sku" validate:"required"`
	Size      string          `json:"size" validate:"required"`
	Price     Pricing         `json:"price"`
	Inventory Inventory       `json:"inventory"`
	Shipping  VariantShipping `json:"shipping"`
}

type Category struct {
	Primary   string   `json:"primary" validate:"required"`
	Secondary []string `json:"secondary" validate:"required"`
	Tags      []string `json:"tags" validate:"required"`
}

type HeroIngredient struct {
	Name       string  `json:"name" validate:"required"`
	Benefit    string  `json:"benefit"`
	Percentage *string `json:"percentage"`
}

type Ingredients struct {
	HeroIngredients []HeroIngredient `json:"hero_ingredients" validate:"required,dive"`
	CompleteINCI    []string         `json:"complete_inci" validate:"required"`
}

type SEO struct {
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords" validate:"required"`
}

type Images struct {
	Primary string   `json:"primary"`
	Gallery []string `json:"gallery"`
}

type Shipping struct {
	WeightGrams          float64    `json:"weight_grams"`
	Dimensions           Dimensions `json:"dimensions_cm"`
	FreeShippingEligible bool       `json:"free_shipping_eligible"`
}

type Reviews struct {
	AverageRating    float64  `json:"average_rating" validate:"gte=0,lte=5"`
	TotalReviews     int      `json:"total_reviews" validate:"gte=0"`
	ReviewHighlights []string `json:"review_highlights" validate:"required"`
}

// Product is an immutable catalog entry. When Variants is non-empty all
// price and stock questions are answered by a variant, otherwise Pricing and
// Inventory are authoritative.
type Product struct {
	ID                string      `json:"id" validate:"required"`
	SKU               string      `json:"sku" validate:"required"`
	Name              string      `json:"name" validate:"required"`
	Slug              string      `json:"slug" validate:"required"`
	Tagline           string      `json:"tagline"`
	ShortDescription  string      `json:"short_description"`
	LongDescription   string      `json:"long_description"`
	Category          Category    `json:"category"`
	Format            string      `json:"format"`
	Size              string      `json:"size"`
	Variants          []Variant   `json:"variants,omitempty" validate:"omitempty,dive"`
	Ingredients       Ingredients `json:"ingredients"`
	SkinTypes         []string    `json:"skin_types" validate:"required"`
	ConcernsAddressed []string    `json:"concerns_addressed" validate:"required"`
	Pricing           Pricing     `json:"pricing"`
	Inventory         Inventory   `json:"inventory"`
	SEO               SEO         `json:"seo"`
	Images            Images      `json:"images"`
	UsageInstructions string      `json:"usage_instructions"`
	Shipping          Shipping    `json:"shipping"`
	Reviews           Reviews     `json:"reviews"`
}

// HasVariants reports whether price and stock resolve through variants.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}
