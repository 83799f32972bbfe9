package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_skincare/internal/domain"
)

func item(productID, sku string, price float64) domain.CartItem {
	return domain.CartItem{
		ProductID: productID,
		Name:      "Product " + productID,
		Price:     price,
		Category:  "Serum",
		SKU:       sku,
	}
}

func assertDerived(t *testing.T, s domain.CartState) {
	t.Helper()
	var total float64
	count := 0
	for _, it := range s.Items {
		total += it.Price * float64(it.Quantity)
		count += it.Quantity
	}
	assert.InDelta(t, total, s.Total, 0.0001)
	assert.Equal(t, count, s.ItemCount)
}

func TestReduce_AddSameLineMerges(t *testing.T) {
	s := emptyState()
	s = Reduce(s, AddToCart(item("tso-001", "TSO-VC-20", 749), 2))
	s = Reduce(s, AddToCart(item("tso-001", "TSO-VC-20", 749), 3))

	require.Len(t, s.Items, 1)
	assert.Equal(t, "tso-001-TSO-VC-20", s.Items[0].ID)
	assert.Equal(t, 5, s.Items[0].Quantity)
	assert.InDelta(t, 3745.0, s.Total, 0.0001)
	assert.Equal(t, 5, s.ItemCount)
}

func TestReduce_DifferentVariantsAreDistinctLines(t *testing.T) {
	s := emptyState()
	s = Reduce(s, AddToCart(item("tso-001", "TSO-VC-20", 749), 1))
	s = Reduce(s, AddToCart(item("tso-001", "TSO-VC-30", 1099), 1))

	require.Len(t, s.Items, 2)
	assert.NotEqual(t, s.Items[0].ID, s.Items[1].ID)
	assert.InDelta(t, 1848.0, s.Total, 0.0001)
}

func TestReduce_AddDefaultsToOneUnit(t *testing.T) {
	s := Reduce(emptyState(), AddToCart(item("a", "A", 10), 0))
	assert.Equal(t, 1, s.Items[0].Quantity)

	s = Reduce(s, AddToCart(item("a", "A", 10), -4))
	assert.Equal(t, 2, s.Items[0].Quantity)
}

func TestReduce_AddIsNotCapped(t *testing.T) {
	s := Reduce(emptyState(), AddToCart(item("a", "A", 1), 98))
	s = Reduce(s, AddToCart(item("a", "A", 1), 5))

	assert.Equal(t, 103, s.Items[0].Quantity, "only UpdateQuantity clamps")
	assert.Equal(t, 103, s.ItemCount)
}

func TestReduce_UpdateQuantityBoundaries(t *testing.T) {
	base := Reduce(emptyState(), AddToCart(item("a", "A", 100), 2))
	id := base.Items[0].ID

	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
	}{
		{"zero removes", 0, 0, 0},
		{"negative removes", -5, 0, 0},
		{"clamped to max", 150, 1, domain.MaxItemQuantity},
		{"set", 7, 1, 7},
		{"max", 99, 1, 99},
		{"one", 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(base, UpdateQuantity(id, tt.quantity))
			require.Len(t, s.Items, tt.wantLines)
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQty, s.Items[0].Quantity)
			}
			assertDerived(t, s)
		})
	}
}

func TestReduce_UnknownLineIsNoop(t *testing.T) {
	base := Reduce(emptyState(), AddToCart(item("a", "A", 100), 2))

	assert.Equal(t, base, Reduce(base, RemoveFromCart("missing")))
	assert.Equal(t, base, Reduce(base, UpdateQuantity("missing", 5)))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	base := Reduce(emptyState(), AddToCart(item("a", "A", 100), 2))
	snapshot := cloneState(base)

	Reduce(base, AddToCart(item("a", "A", 100), 1))
	Reduce(base, UpdateQuantity(base.Items[0].ID, 9))
	Reduce(base, RemoveFromCart(base.Items[0].ID))

	assert.Equal(t, snapshot, base)
}

func TestReduce_ClearAndVisibility(t *testing.T) {
	s := Reduce(emptyState(), AddToCart(item("a", "A", 100), 2))

	s = Reduce(s, OpenCart())
	assert.True(t, s.IsOpen)
	s = Reduce(s, ToggleCart())
	assert.False(t, s.IsOpen)
	s = Reduce(s, ToggleCart())
	assert.True(t, s.IsOpen)
	assert.Equal(t, 2, s.ItemCount, "visibility never touches items")

	s = Reduce(s, ClearCart())
	assert.Empty(t, s.Items)
	assert.NotNil(t, s.Items)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.ItemCount)
	assert.True(t, s.IsOpen)

	s = Reduce(s, CloseCart())
	assert.False(t, s.IsOpen)
}

func TestReduce_DecimalTotals(t *testing.T) {
	s := Reduce(emptyState(), AddToCart(item("a", "A", 0.1), 1))
	s = Reduce(s, AddToCart(item("b", "B", 0.2), 1))

	assert.Equal(t, 0.3, s.Total)
}

func TestReduce_DerivedFieldsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []domain.CartItem{
		item("a", "A-50", 400),
		item("a", "A-100", 700),
		item("b", "B", 500),
		item("c", "C", 19.99),
	}

	s := emptyState()
	for i := 0; i < 500; i++ {
		p := products[rng.Intn(len(products))]
		id := domain.CartLineID(p.ProductID, p.SKU)
		switch rng.Intn(3) {
		case 0:
			s = Reduce(s, AddToCart(p, rng.Intn(4)))
		case 1:
			s = Reduce(s, RemoveFromCart(id))
		case 2:
			s = Reduce(s, UpdateQuantity(id, rng.Intn(130)-10))
		}
		assertDerived(t, s)
	}
}
