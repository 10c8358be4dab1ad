package model

import (
	"github.com/shopspring/decimal"
)

// Item is a snapshot of a catalog product taken when it was added to a collection.
type Item struct {
	// ID is the product identifier. Unique within a collection.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"model_name"`
	// Brand is the brand name from the product view.
	Brand string `json:"brand,omitempty"`
	// Type is the product type name.
	Type string `json:"type,omitempty"`
	// Category is the category name.
	Category string `json:"category,omitempty"`
	// Price is the undiscounted unit price.
	Price decimal.Decimal `json:"price"`
	// Quantity is the number of units (cart only).
	Quantity int `json:"quantity,omitempty"`
	// DiscountPercentage overrides the default discount when set and non-zero.
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	// DiscountedPrice is the unit price after discount (cart only).
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	// TotalPrice is Quantity times DiscountedPrice (cart only).
	TotalPrice decimal.Decimal `json:"totalPrice"`
	// Specifications holds product attributes keyed by name.
	Specifications map[string]string `json:"specifications,omitempty"`
	// Images are image URIs in display order.
	Images []string `json:"images,omitempty"`
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	out := i
	if i.DiscountPercentage != nil {
		d := *i.DiscountPercentage
		out.DiscountPercentage = &d
	}
	if i.Specifications != nil {
		out.Specifications = make(map[string]string, len(i.Specifications))
		for k, v := range i.Specifications {
			out.Specifications[k] = v
		}
	}
	if i.Images != nil {
		out.Images = make([]string, len(i.Images))
		copy(out.Images, i.Images)
	}
	return out
}

// Thumbnail returns the first image URI, if any.
func (i Item) Thumbnail() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}

// ItemFromProduct snapshots a product for storing in a collection.
func ItemFromProduct(p Product, quantity int) Item {
	item := Item{
		ID:             p.ID,
		Name:           p.ModelName,
		Brand:          p.Brand,
		Type:           p.Type,
		Category:       p.Category,
		Price:          p.Price,
		Quantity:       quantity,
		Specifications: p.Specifications.Map(),
	}
	if p.DiscountPercentage != nil {
		d := *p.DiscountPercentage
		item.DiscountPercentage = &d
	}
	if len(p.Images) > 0 {
		item.Images = append([]string(nil), p.Images...)
	}
	return item
}
