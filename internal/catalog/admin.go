package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/lazyvibe/storefront/internal/model"
)

// Resource is a CRUD endpoint of the admin console.
type Resource[T any] struct {
	c    *Client
	path string
}

// List returns one page of the resource.
func (r Resource[T]) List(ctx context.Context, q ListQuery) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path, q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one entity.
func (r Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.item(id), nil, nil, &out)
	return out, err
}

// Create posts v and returns the created entity.
func (r Resource[T]) Create(ctx context.Context, v T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path, nil, v, &out)
	return out, err
}

// Update replaces the entity with id and returns it.
func (r Resource[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.item(id), nil, v, &out)
	return out, err
}

// Delete removes the entity with id.
func (r Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r Resource[T]) item(id string) string {
	return strings.TrimSuffix(r.path, "/") + "/" + url.PathEscape(id)
}

// Admin groups the admin console resources.
type Admin struct {
	c *Client
}

// Admin returns the admin console resources. Requests use the session of the
// signed-in user; the backend enforces the admin role.
func (c *Client) Admin() Admin {
	return Admin{c: c}
}

func (a Admin) Brands() Resource[model.Brand] {
	return Resource[model.Brand]{c: a.c, path: "products/brands"}
}

func (a Admin) Types() Resource[model.Type] {
	return Resource[model.Type]{c: a.c, path: "products/types"}
}

func (a Admin) Categories() Resource[model.Category] {
	return Resource[model.Category]{c: a.c, path: "products/categories"}
}

func (a Admin) Products() Resource[model.Product] {
	return Resource[model.Product]{c: a.c, path: "products/products"}
}

func (a Admin) BlogPosts() Resource[model.BlogPost] {
	return Resource[model.BlogPost]{c: a.c, path: "blogs/blog-posts"}
}

func (a Admin) Reviews() Resource[model.Review] {
	return Resource[model.Review]{c: a.c, path: "reviews/reviews"}
}
