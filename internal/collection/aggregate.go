package collection

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lazyvibe/storefront/internal/model"
)

// DefaultDiscountPercent applies when an item carries no discount or a zero one.
const DefaultDiscountPercent = 5

var hundred = decimal.NewFromInt(100)

// EffectiveDiscount returns the discount percentage used for pricing item.
func EffectiveDiscount(item model.Item) decimal.Decimal {
	if item.DiscountPercentage == nil || item.DiscountPercentage.IsZero() {
		return decimal.NewFromInt(DefaultDiscountPercent)
	}
	return *item.DiscountPercentage
}

// DiscountedPrice returns the unit price after discount.
func DiscountedPrice(item model.Item) decimal.Decimal {
	off := item.Price.Mul(EffectiveDiscount(item)).Div(hundred)
	return item.Price.Sub(off)
}

// ItemTotal returns quantity times the discounted unit price.
func ItemTotal(item model.Item) decimal.Decimal {
	return DiscountedPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Count returns the number of entries, or the number of units when the policy
// counts by quantity.
func Count(items []model.Item, p Policy) int {
	if !p.CountByQuantity {
		return len(items)
	}
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Total sums item totals. Unpriced policies always total zero.
func Total(items []model.Item, p Policy) decimal.Decimal {
	total := decimal.Zero
	if !p.Priced {
		return total
	}
	for _, it := range items {
		total = total.Add(ItemTotal(it))
	}
	return total
}

// SpecKeys returns the union of specification keys in first-seen order.
func SpecKeys(items []model.Item) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, it := range items {
		for _, k := range sortedKeys(it.Specifications) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
