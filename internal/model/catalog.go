package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog product as served by the products service.
type Product struct {
	ID                 string           `json:"id"`
	ModelName          string           `json:"model_name"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	Category           string           `json:"category,omitempty"`
	Brand              string           `json:"brand,omitempty"`
	Type               string           `json:"type,omitempty"`
	CategoryID         string           `json:"category_id,omitempty"`
	BrandID            string           `json:"brand_id,omitempty"`
	TypeID             string           `json:"type_id,omitempty"`
	Specifications     Specifications   `json:"specifications"`
	Content            string           `json:"content,omitempty"`
	Images             []string         `json:"images,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// Specifications are the laptop attributes the products service knows about.
type Specifications struct {
	CPU               string `json:"cpu"`
	CPUCores          int    `json:"cpu_cores"`
	OperatingSystem   string `json:"operating_system"`
	ScreenSize        string `json:"screen_size"`
	ScreenRefreshRate string `json:"screen_refresh_rate"`
	ScreenBrightness  string `json:"screen_brightness"`
	ScreenType        string `json:"screen_type"`
	Storage           string `json:"storage"`
	Battery           string `json:"battery"`
	RAM               string `json:"ram"`
	Dimensions        string `json:"dimensions"`
	Weight            string `json:"weight"`
}

// Map flattens the specifications into a string map keyed by JSON name.
// Empty attributes are omitted.
func (s Specifications) Map() map[string]string {
	out := make(map[string]string, 12)
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("cpu", s.CPU)
	if s.CPUCores > 0 {
		out["cpu_cores"] = strconv.Itoa(s.CPUCores)
	}
	put("operating_system", s.OperatingSystem)
	put("screen_size", s.ScreenSize)
	put("screen_refresh_rate", s.ScreenRefreshRate)
	put("screen_brightness", s.ScreenBrightness)
	put("screen_type", s.ScreenType)
	put("storage", s.Storage)
	put("battery", s.Battery)
	put("ram", s.RAM)
	put("dimensions", s.Dimensions)
	put("weight", s.Weight)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Brand is a product brand.
type Brand struct {
	ID        string    `json:"id"`
	BrandName string    `json:"brand_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Type is a product type (e.g. "Gaming").
type Type struct {
	ID        string    `json:"id"`
	TypeName  string    `json:"type_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category is a product category.
type Category struct {
	ID           string    `json:"id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BlogPost is a news article.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review is a customer review of a product.
type Review struct {
	ID         string    `json:"id,omitempty"`
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Content    string    `json:"content"`
	Rating     float64   `json:"rating"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PaymentItem is one checkout line sent to the payment service.
type PaymentItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}
