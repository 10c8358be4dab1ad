package catalog

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lazyvibe/storefront/internal/collection"
	"github.com/lazyvibe/storefront/internal/model"
)

// ErrEmptyCheckout is returned when a checkout has no items.
var ErrEmptyCheckout = errors.New("checkout has no items")

// PaymentItemsFromCart maps cart snapshots to checkout lines at their
// discounted unit price.
func PaymentItemsFromCart(items []model.Item) []model.PaymentItem {
	out := make([]model.PaymentItem, 0, len(items))
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		name := it.Name
		if name == "" {
			name = it.ID
		}
		out = append(out, model.PaymentItem{
			Name:     name,
			Price:    collection.DiscountedPrice(it),
			Quantity: qty,
		})
	}
	return out
}

// CreateCheckoutSession starts a hosted checkout and returns its URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []model.PaymentItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCheckout
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "payment/create-checkout-session", nil, items, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("checkout session returned no url")
	}
	c.logger.Info("checkout session created", zap.String("url", out.URL), zap.Int("count", len(items)))
	return out.URL, nil
}
