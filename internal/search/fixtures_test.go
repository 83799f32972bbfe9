package search

import (
	"github.com/fjod/go_skincare/internal/domain"
)

type fixedCatalog []*domain.Product

func (c fixedCatalog) List() []*domain.Product {
	return c
}

func baseProduct(id, name string) *domain.Product {
	return &domain.Product{
		ID:   id,
		SKU:  "SKU-" + id,
		Name: name,
		Slug: id,
		Category: domain.Category{
			Primary:   "Serum",
			Secondary: []string{},
			Tags:      []string{},
		},
		Ingredients: domain.Ingredients{
			HeroIngredients: []domain.HeroIngredient{},
			CompleteINCI:    []string{},
		},
		SkinTypes:         []string{},
		ConcernsAddressed: []string{},
		SEO:               domain.SEO{Keywords: []string{}},
		Reviews:           domain.Reviews{ReviewHighlights: []string{}},
		Pricing:           domain.Pricing{MRP: 500, SellingPrice: 500},
		Inventory:         domain.Inventory{StockQuantity: 10, LowStockThreshold: 2, Status: domain.StatusInStock},
	}
}

func vitaminSerum() *domain.Product {
	p := baseProduct("tso-001", "Brightening Vitamin C Serum")
	p.Tagline = "For radiant skin in 4 weeks"
	p.ShortDescription = "A potent vitamin C serum"
	p.LongDescription = "Ethyl ascorbic acid brightens dull skin."
	p.Category = domain.Category{
		Primary:   "Serum",
		Secondary: []string{"Treatment"},
		Tags:      []string{"brightening", "vitamin c"},
	}
	p.SkinTypes = []string{"All"}
	p.ConcernsAddressed = []string{"Dullness", "Dark Spots"}
	p.Ingredients = domain.Ingredients{
		HeroIngredients: []domain.HeroIngredient{{Name: "Ethyl Ascorbic Acid", Benefit: "Brightens skin"}},
		CompleteINCI:    []string{"Aqua", "Ethyl Ascorbic Acid"},
	}
	p.SEO.Keywords = []string{"vitamin c serum"}
	p.Reviews.AverageRating = 4.7
	p.Variants = []domain.Variant{
		{
			ID: "v1", SKU: "TSO-VC-20", Size: "20ml",
			Price:     domain.Pricing{MRP: 899, SellingPrice: 749},
			Inventory: domain.Inventory{StockQuantity: 5, LowStockThreshold: 2, Status: domain.StatusInStock},
		},
		{
			ID: "v2", SKU: "TSO-VC-30", Size: "30ml",
			Price:     domain.Pricing{MRP: 1299, SellingPrice: 1099},
			Inventory: domain.Inventory{StockQuantity: 0, Status: domain.StatusOutOfStock},
		},
	}
	return p
}

func gentleCleanser() *domain.Product {
	p := baseProduct("tso-003", "Gentle Cleanser")
	p.Tagline = "Clean without stripping"
	p.ShortDescription = "A low-foam daily wash"
	p.LongDescription = "Glycerin and oat keep the barrier calm."
	p.Category = domain.Category{Primary: "Cleanser", Secondary: []string{}, Tags: []string{"daily"}}
	p.SkinTypes = []string{"Dry", "Sensitive"}
	p.ConcernsAddressed = []string{"Dryness"}
	p.Ingredients = domain.Ingredients{
		HeroIngredients: []domain.HeroIngredient{{Name: "Oat Extract", Benefit: "Soothes"}},
		CompleteINCI:    []string{"Aqua", "Glycerin", "Avena Sativa Kernel Extract"},
	}
	p.Pricing = domain.Pricing{MRP: 450, SellingPrice: 399}
	p.Reviews.AverageRating = 4.4
	return p
}

func nightSerum() *domain.Product {
	p := baseProduct("tso-006", "Retinol Night Serum")
	p.Tagline = "Overnight renewal"
	p.ShortDescription = "Encapsulated retinol"
	p.LongDescription = "A slow release serum for texture."
	p.SkinTypes = []string{"Normal", "Oily"}
	p.ConcernsAddressed = []string{"Fine Lines", "Acne"}
	p.Ingredients = domain.Ingredients{
		HeroIngredients: []domain.HeroIngredient{{Name: "Retinol", Benefit: "Smooths texture"}},
		CompleteINCI:    []string{"Aqua", "Retinol", "Squalane"},
	}
	p.Pricing = domain.Pricing{MRP: 1100, SellingPrice: 949}
	p.Inventory = domain.Inventory{StockQuantity: 0, LowStockThreshold: 2, Status: domain.StatusOutOfStock}
	p.Reviews.AverageRating = 4.3
	return p
}

func fixtureCatalog() fixedCatalog {
	return fixedCatalog{vitaminSerum(), gentleCleanser(), nightSerum()}
}
