package domain

import "strings"

// CategoryKey is the closed set of category families the storefront styles
// and groups products by.
type CategoryKey string

const (
	CategoryCleanser    CategoryKey = "cleanser"
	CategorySerum       CategoryKey = "serum"
	CategoryMoisturizer CategoryKey = "moisturizer"
	CategorySunscreen   CategoryKey = "sunscreen"
)

// CategoryKeyFor maps a primary category label to its key. Labels outside
// the known families map to CategoryCleanser.
func CategoryKeyFor(primary string) CategoryKey {
	switch strings.ToLower(strings.TrimSpace(primary)) {
	case "cleanser":
		return CategoryCleanser
	case "serum":
		return CategorySerum
	case "moisturizer":
		return CategoryMoisturizer
	case "sunscreen":
		return CategorySunscreen
	default:
		return CategoryCleanser
	}
}
