package productlist

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/storefront/internal/model"
)

func products() []model.Product {
	return []model.Product{
		{ID: "a", ModelName: "ThinkPad X1", Price: decimal.NewFromInt(1000)},
		{ID: "b", ModelName: "MacBook Air", Price: decimal.NewFromInt(1500)},
		{ID: "c", ModelName: "ROG Zephyrus", Price: decimal.NewFromInt(2000)},
	}
}

func TestSetProducts_MembershipAndCursor(t *testing.T) {
	m := New("KZT")
	m.SetSize(60, 30)
	inCart := func(id string) bool { return id == "b" }
	m.SetProducts(products(), inCart, nil)

	m.HandleKey("down")
	m.HandleKey("down")
	require.NotNil(t, m.SelectedProduct())
	assert.Equal(t, "c", m.SelectedProduct().ID)

	m.SetProducts(products()[:1], inCart, nil)
	assert.Equal(t, "a", m.SelectedProduct().ID, "cursor clamps to the new list")

	m.SetProducts(products(), inCart, func(id string) bool { return id == "a" })
	assert.True(t, m.items[0].InCompare)
	assert.True(t, m.items[1].InCart)
	assert.False(t, m.items[2].InCart)
}

func TestView_ShowsPricesAndDetails(t *testing.T) {
	m := New("KZT")
	m.SetSize(80, 30)
	m.SetFocused(true)
	m.SetProducts(products(), nil, nil)

	view := m.View()
	assert.Contains(t, view, "ThinkPad X1")
	assert.Contains(t, view, "1 000,00 ₸")
	assert.Contains(t, view, "950,00 ₸", "discounted price in details")
}

func TestView_Empty(t *testing.T) {
	m := New("KZT")
	m.SetSize(60, 20)

	assert.Contains(t, m.View(), "No products found")
	assert.Nil(t, m.SelectedProduct())
}

func TestView_FilterReplacesPage(t *testing.T) {
	m := New("KZT")
	m.SetSize(80, 30)
	m.SetProducts(products(), nil, nil)
	m.SetPage(2, "")
	assert.Contains(t, m.View(), "page 3")

	m.SetFilter("brand Lenovo")
	view := m.View()
	assert.Contains(t, view, "filter brand Lenovo")
	assert.NotContains(t, view, "page 3")
}
