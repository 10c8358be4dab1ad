package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/storefront/internal/model"
)

func TestPaymentItemsFromCart(t *testing.T) {
	ten := decimal.NewFromInt(10)
	items := PaymentItemsFromCart([]model.Item{
		{ID: "a", Name: "ThinkPad", Price: decimal.NewFromInt(1000), Quantity: 2},
		{ID: "b", Price: decimal.NewFromInt(200), DiscountPercentage: &ten},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "ThinkPad", items[0].Name)
	assert.True(t, decimal.NewFromInt(950).Equal(items[0].Price))
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "b", items[1].Name)
	assert.True(t, decimal.NewFromInt(180).Equal(items[1].Price))
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCreateCheckoutSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/create-checkout-session", r.URL.Path)
		var body []model.PaymentItem
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body, 1)
		writeJSON(w, http.StatusOK, map[string]string{"url": "https://checkout.example/s/1"})
	}))

	url, err := c.CreateCheckoutSession(context.Background(), []model.PaymentItem{
		{Name: "ThinkPad", Price: decimal.NewFromInt(950), Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/s/1", url)
}

func TestCreateCheckoutSession_Empty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))

	_, err := c.CreateCheckoutSession(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCheckout)
}

func TestCreateCheckoutSession_MissingURL(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	}))

	_, err := c.CreateCheckoutSession(context.Background(), []model.PaymentItem{{Name: "x", Quantity: 1}})
	assert.Error(t, err)
}
