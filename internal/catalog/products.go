package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lazyvibe/storefront/internal/model"
)

// Sort orders accepted by list endpoints.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// filterFetchLimit is how many products are fetched when filtering by brand
// or type on the client.
const filterFetchLimit = 100

// ListQuery pages and sorts a list endpoint. Zero fields are not sent.
type ListQuery struct {
	Limit     int
	Skip      int
	SortField string
	SortOrder string
	Search    string
}

// ProductQuery selects a page of products.
type ProductQuery = ListQuery

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.SortField != "" {
		v.Set("sortField", q.SortField)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	return v
}

// withProductDefaults fills the defaults the products page uses.
func (q ProductQuery) withProductDefaults() ProductQuery {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.SortField == "" {
		q.SortField = "model_name"
	}
	if q.SortOrder == "" {
		q.SortOrder = SortAsc
	}
	return q
}

// Products returns one page of products.
func (c *Client) Products(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "products/products", q.withProductDefaults().values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product returns a single product.
func (c *Client) Product(ctx context.Context, id string) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodGet, "products/products/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductsByBrand returns products whose brand name equals brand, ignoring case.
func (c *Client) ProductsByBrand(ctx context.Context, brand string) ([]model.Product, error) {
	return c.filterProducts(ctx, func(p model.Product) bool { return strings.EqualFold(p.Brand, brand) })
}

// ProductsByType returns products whose type name equals typ, ignoring case.
func (c *Client) ProductsByType(ctx context.Context, typ string) ([]model.Product, error) {
	return c.filterProducts(ctx, func(p model.Product) bool { return strings.EqualFold(p.Type, typ) })
}

// ProductFilter narrows the catalog by taxonomy names and a search text.
// Empty fields match everything.
type ProductFilter struct {
	Brand    string
	Type     string
	Category string
	Search   string
}

// IsZero reports whether f matches every product.
func (f ProductFilter) IsZero() bool {
	return f == ProductFilter{}
}

// Match reports whether p passes f. Names compare case-insensitively and the
// search text is looked up in the model and brand names.
func (f ProductFilter) Match(p model.Product) bool {
	same := func(want, got string) bool {
		want = strings.TrimSpace(want)
		return want == "" || strings.EqualFold(want, got)
	}
	if !same(f.Brand, p.Brand) || !same(f.Type, p.Type) || !same(f.Category, p.Category) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	return q == "" ||
		strings.Contains(strings.ToLower(p.ModelName), q) ||
		strings.Contains(strings.ToLower(p.Brand), q)
}

// FilterProducts returns the products passing f. The products service has no
// taxonomy filters, so the narrowest client-side lookup is used and the rest
// of f is applied to its result.
func (c *Client) FilterProducts(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	var (
		found []model.Product
		err   error
	)
	switch {
	case strings.TrimSpace(f.Brand) != "":
		found, err = c.ProductsByBrand(ctx, strings.TrimSpace(f.Brand))
	case strings.TrimSpace(f.Type) != "":
		found, err = c.ProductsByType(ctx, strings.TrimSpace(f.Type))
	default:
		found, err = c.filterProducts(ctx, func(model.Product) bool { return true })
	}
	if err != nil {
		return nil, err
	}
	out := found[:0]
	for _, p := range found {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *Client) filterProducts(ctx context.Context, keep func(model.Product) bool) ([]model.Product, error) {
	all, err := c.Products(ctx, ProductQuery{Limit: filterFetchLimit})
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Brands returns every brand.
func (c *Client) Brands(ctx context.Context) ([]model.Brand, error) {
	var out []model.Brand
	if err := c.do(ctx, http.MethodGet, "products/brands", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Types returns every product type.
func (c *Client) Types(ctx context.Context) ([]model.Type, error) {
	var out []model.Type
	if err := c.do(ctx, http.MethodGet, "products/types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories returns every category.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "products/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BlogPosts returns up to limit news posts. A limit of zero returns all.
func (c *Client) BlogPosts(ctx context.Context, limit int) ([]model.BlogPost, error) {
	var out []model.BlogPost
	if err := c.do(ctx, http.MethodGet, "blogs/blog-posts", ListQuery{Limit: limit}.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BlogPost returns a single news post.
func (c *Client) BlogPost(ctx context.Context, id string) (*model.BlogPost, error) {
	var out model.BlogPost
	if err := c.do(ctx, http.MethodGet, "blogs/blog-posts/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reviews returns every review.
func (c *Client) Reviews(ctx context.Context) ([]model.Review, error) {
	var out []model.Review
	if err := c.do(ctx, http.MethodGet, "reviews/reviews", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewsByProduct returns the reviews of one product.
func (c *Client) ReviewsByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	var out []model.Review
	if err := c.do(ctx, http.MethodGet, "reviews/reviews/product/"+url.PathEscape(productID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewsByCustomer returns the reviews written by one customer.
func (c *Client) ReviewsByCustomer(ctx context.Context, customerID string) ([]model.Review, error) {
	var out []model.Review
	if err := c.do(ctx, http.MethodGet, "reviews/reviews/customer/"+url.PathEscape(customerID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview posts a review and returns it as stored.
func (c *Client) CreateReview(ctx context.Context, r model.Review) (*model.Review, error) {
	var out model.Review
	if err := c.do(ctx, http.MethodPost, "reviews/reviews", nil, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
