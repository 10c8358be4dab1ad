package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Prices travel as JSON numbers in both the catalog API and the stored
// envelopes. decimal quotes them by default, so the types carrying prices
// marshal through these shadow structs instead of flipping the package-wide
// decimal.MarshalJSONWithoutQuotes switch.

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func optionalNumber(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := number(*d)
	return &n
}

type itemJSON Item

// MarshalJSON encodes the prices of i as JSON numbers.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		itemJSON
		Price              json.Number  `json:"price"`
		DiscountPercentage *json.Number `json:"discountPercentage,omitempty"`
		DiscountedPrice    json.Number  `json:"discountedPrice"`
		TotalPrice         json.Number  `json:"totalPrice"`
	}{
		itemJSON:           itemJSON(i),
		Price:              number(i.Price),
		DiscountPercentage: optionalNumber(i.DiscountPercentage),
		DiscountedPrice:    number(i.DiscountedPrice),
		TotalPrice:         number(i.TotalPrice),
	})
}

type productJSON Product

// MarshalJSON encodes the prices of p as JSON numbers.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		productJSON
		Price              json.Number  `json:"price"`
		DiscountPercentage *json.Number `json:"discountPercentage,omitempty"`
	}{
		productJSON:        productJSON(p),
		Price:              number(p.Price),
		DiscountPercentage: optionalNumber(p.DiscountPercentage),
	})
}

type paymentItemJSON PaymentItem

// MarshalJSON encodes the price of p as a JSON number.
func (p PaymentItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		paymentItemJSON
		Price json.Number `json:"price"`
	}{
		paymentItemJSON: paymentItemJSON(p),
		Price:           number(p.Price),
	})
}
