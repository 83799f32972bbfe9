package search

// DefaultTrending is the curated list of popular searches.
var DefaultTrending = []string{
	"Vitamin C Serum",
	"Niacinamide",
	"Retinol",
	"Hyaluronic Acid",
	"Sunscreen",
	"Anti-aging",
	"Acne Control",
	"Brightening",
	"Dark Spots",
	"Moisturizer",
}

// Trending returns the trending search terms.
func (e *Engine) Trending() []string {
	return append([]string{}, e.trending...)
}
