package comparetable

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/storefront/internal/model"
)

func TestRows_UnionOfSpecKeys(t *testing.T) {
	items := []model.Item{
		{ID: "a", Price: decimal.NewFromInt(1000), Brand: "Lenovo", Specifications: map[string]string{"ram": "16GB", "cpu": "i7"}},
		{ID: "b", Price: decimal.NewFromInt(2000), Specifications: map[string]string{"weight": "1.2kg", "cpu": "M2"}},
	}

	rows := Rows(items, "KZT")

	labels := make([]string, len(rows))
	for i, r := range rows {
		require.Len(t, r, 3)
		labels[i] = r[0]
	}
	assert.Equal(t, []string{"Price", "With discount", "Brand", "Type", "CPU", "Ram", "Weight"}, labels)
	assert.Equal(t, []string{"With discount", "950,00 ₸", "1 900,00 ₸"}, rows[1])
	assert.Equal(t, []string{"Brand", "Lenovo", "—"}, rows[2])
	assert.Equal(t, []string{"Weight", "—", "1.2kg"}, rows[6])
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Screen refresh rate", Label("screen_refresh_rate"))
	assert.Equal(t, "CPU cores", Label("cpu_cores"))
	assert.Equal(t, "", Label(" "))
}

func TestHandleKey_ScrollsWindow(t *testing.T) {
	m := New("KZT")
	m.SetSize(4+labelWidth+2*columnWidth, 30)
	m.SetItems([]model.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	m.HandleKey("right")
	m.HandleKey("right")
	assert.Equal(t, "c", m.Selected().ID)
	assert.Equal(t, 1, m.offset)

	m.SetItems([]model.Item{{ID: "a"}})
	assert.Equal(t, "a", m.Selected().ID)
	assert.Contains(t, m.View(), "Price")
}
