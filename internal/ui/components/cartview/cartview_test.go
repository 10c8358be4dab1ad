package cartview

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/storefront/internal/model"
)

func TestCartView_RendersLinesAndTotal(t *testing.T) {
	m := New("KZT")
	m.SetSize(90, 20)
	m.SetFocused(true)
	m.SetItems([]model.Item{
		{ID: "a", Name: "ThinkPad X1", Quantity: 2, DiscountedPrice: decimal.NewFromInt(950), TotalPrice: decimal.NewFromInt(1900)},
	}, 2, decimal.NewFromInt(1900))

	view := m.View()
	assert.Contains(t, view, "ThinkPad X1")
	assert.Contains(t, view, "×2")
	assert.Contains(t, view, "Total: 1 900,00 ₸")
}

func TestCartView_CursorFollowsShrinkingList(t *testing.T) {
	m := New("KZT")
	m.SetSize(90, 20)
	items := []model.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m.SetItems(items, 3, decimal.Zero)
	m.HandleKey("down")
	m.HandleKey("down")
	require.Equal(t, "c", m.Selected().ID)

	m.SetItems(items[:2], 2, decimal.Zero)
	assert.Equal(t, "b", m.Selected().ID)

	m.SetItems(nil, 0, decimal.Zero)
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "Your cart is empty")
}
