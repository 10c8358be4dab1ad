package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemJSON_PricesAreNumbers(t *testing.T) {
	discount := decimal.NewFromInt(10)
	item := Item{
		ID:                 "p1",
		Name:               "ThinkPad",
		Price:              decimal.RequireFromString("999.50"),
		Quantity:           2,
		DiscountPercentage: &discount,
	}

	data, err := json.Marshal([]Item{item})
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "p1",
		"model_name": "ThinkPad",
		"price": 999.5,
		"quantity": 2,
		"discountPercentage": 10,
		"discountedPrice": 0,
		"totalPrice": 0
	}]`, string(data))
	assert.False(t, decimal.MarshalJSONWithoutQuotes, "package-wide decimal setting is left alone")

	var back []Item
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.True(t, item.Price.Equal(back[0].Price))
	require.NotNil(t, back[0].DiscountPercentage)
	assert.True(t, discount.Equal(*back[0].DiscountPercentage))
}

func TestProductAndPaymentJSON_PricesAreNumbers(t *testing.T) {
	data, err := json.Marshal(Product{ID: "p1", Price: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(1000), raw["price"])
	assert.NotContains(t, raw, "discountPercentage")

	data, err = json.Marshal(PaymentItem{Name: "ThinkPad", Price: decimal.RequireFromString("900.25"), Quantity: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ThinkPad","price":900.25,"quantity":1}`, string(data))
}
