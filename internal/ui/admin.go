package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lazyvibe/storefront/internal/catalog"
	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/ui/components/adminpanel"
	"github.com/lazyvibe/storefront/internal/ui/components/dialog"
)

// adminSection is one resource of the admin console.
type adminSection interface {
	Name() string
	List(ctx context.Context, a catalog.Admin) ([]adminpanel.Row, error)
	// Form returns the edit form of row, or the create form when row is nil.
	Form(row *adminpanel.Row) []dialog.InputField
	// Save creates an entity when row is nil and updates row otherwise.
	Save(ctx context.Context, a catalog.Admin, row *adminpanel.Row, values []string) error
	Delete(ctx context.Context, a catalog.Admin, id string) error
}

// adminSpec binds a catalog.Resource to the console.
type adminSpec[T any] struct {
	name     string
	resource func(catalog.Admin) catalog.Resource[T]
	id       func(T) string
	row      func(T) (title, detail string)
	fields   []dialog.InputField
	values   func(T) []string
	apply    func(T, []string) (T, error)
}

func (s adminSpec[T]) Name() string { return s.name }

func (s adminSpec[T]) List(ctx context.Context, a catalog.Admin) ([]adminpanel.Row, error) {
	items, err := s.resource(a).List(ctx, catalog.ListQuery{})
	if err != nil {
		return nil, err
	}
	rows := make([]adminpanel.Row, len(items))
	for i, it := range items {
		title, detail := s.row(it)
		rows[i] = adminpanel.Row{ID: s.id(it), Title: title, Detail: detail, Source: it}
	}
	return rows, nil
}

func (s adminSpec[T]) Form(row *adminpanel.Row) []dialog.InputField {
	fields := append([]dialog.InputField(nil), s.fields...)
	if row == nil {
		return fields
	}
	if v, ok := row.Source.(T); ok {
		for i, val := range s.values(v) {
			if i < len(fields) {
				fields[i].Value = val
			}
		}
	}
	return fields
}

func (s adminSpec[T]) Save(ctx context.Context, a catalog.Admin, row *adminpanel.Row, values []string) error {
	var base T
	if row != nil {
		v, ok := row.Source.(T)
		if !ok {
			return fmt.Errorf("%s: row %s has no source entity", s.name, row.ID)
		}
		base = v
	}
	v, err := s.apply(base, values)
	if err != nil {
		return err
	}
	if row == nil {
		_, err = s.resource(a).Create(ctx, v)
		return err
	}
	_, err = s.resource(a).Update(ctx, row.ID, v)
	return err
}

func (s adminSpec[T]) Delete(ctx context.Context, a catalog.Admin, id string) error {
	return s.resource(a).Delete(ctx, id)
}

func required(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validatePrice(v string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || d.IsNegative() {
		return errors.New("price must be a non-negative number")
	}
	return nil
}

func validateDiscount(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("discount must be between 0 and 100")
	}
	return nil
}

func validateRating(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

func adminSections() []adminSection {
	return []adminSection{
		adminSpec[model.Brand]{
			name:     "Brands",
			resource: catalog.Admin.Brands,
			id:       func(b model.Brand) string { return b.ID },
			row:      func(b model.Brand) (string, string) { return b.BrandName, "" },
			fields:   []dialog.InputField{{Label: "Brand name", Validate: required("brand name")}},
			values:   func(b model.Brand) []string { return []string{b.BrandName} },
			apply: func(b model.Brand, v []string) (model.Brand, error) {
				b.BrandName = strings.TrimSpace(v[0])
				return b, nil
			},
		},
		adminSpec[model.Type]{
			name:     "Types",
			resource: catalog.Admin.Types,
			id:       func(t model.Type) string { return t.ID },
			row:      func(t model.Type) (string, string) { return t.TypeName, "" },
			fields:   []dialog.InputField{{Label: "Type name", Validate: required("type name")}},
			values:   func(t model.Type) []string { return []string{t.TypeName} },
			apply: func(t model.Type, v []string) (model.Type, error) {
				t.TypeName = strings.TrimSpace(v[0])
				return t, nil
			},
		},
		adminSpec[model.Category]{
			name:     "Categories",
			resource: catalog.Admin.Categories,
			id:       func(c model.Category) string { return c.ID },
			row:      func(c model.Category) (string, string) { return c.CategoryName, "" },
			fields:   []dialog.InputField{{Label: "Category name", Validate: required("category name")}},
			values:   func(c model.Category) []string { return []string{c.CategoryName} },
			apply: func(c model.Category, v []string) (model.Category, error) {
				c.CategoryName = strings.TrimSpace(v[0])
				return c, nil
			},
		},
		adminSpec[model.Product]{
			name:     "Products",
			resource: catalog.Admin.Products,
			id:       func(p model.Product) string { return p.ID },
			row: func(p model.Product) (string, string) {
				return p.ModelName, strings.Join(nonEmpty(p.Brand, p.Type, p.Price.String()), " · ")
			},
			fields: []dialog.InputField{
				{Label: "Model name", Validate: required("model name")},
				{Label: "Price", Validate: validatePrice},
				{Label: "Discount %", Placeholder: "empty for default", Validate: validateDiscount},
				{Label: "Brand ID", Validate: required("brand id")},
				{Label: "Type ID", Validate: required("type id")},
				{Label: "Category ID", Validate: required("category id")},
			},
			values: func(p model.Product) []string {
				discount := ""
				if p.DiscountPercentage != nil {
					discount = p.DiscountPercentage.String()
				}
				return []string{p.ModelName, p.Price.String(), discount, p.BrandID, p.TypeID, p.CategoryID}
			},
			apply: func(p model.Product, v []string) (model.Product, error) {
				price, err := decimal.NewFromString(strings.TrimSpace(v[1]))
				if err != nil {
					return p, err
				}
				p.ModelName = strings.TrimSpace(v[0])
				p.Price = price
				p.DiscountPercentage = nil
				if s := strings.TrimSpace(v[2]); s != "" {
					d, err := decimal.NewFromString(s)
					if err != nil {
						return p, err
					}
					p.DiscountPercentage = &d
				}
				p.BrandID = strings.TrimSpace(v[3])
				p.TypeID = strings.TrimSpace(v[4])
				p.CategoryID = strings.TrimSpace(v[5])
				return p, nil
			},
		},
		adminSpec[model.BlogPost]{
			name:     "Posts",
			resource: catalog.Admin.BlogPosts,
			id:       func(b model.BlogPost) string { return b.ID },
			row:      func(b model.BlogPost) (string, string) { return b.Title, "" },
			fields: []dialog.InputField{
				{Label: "Title", Validate: required("title")},
				{Label: "Content", CharLimit: 4000, Validate: required("content")},
				{Label: "Image URL"},
			},
			values: func(b model.BlogPost) []string { return []string{b.Title, b.Content, b.Image} },
			apply: func(b model.BlogPost, v []string) (model.BlogPost, error) {
				b.Title = strings.TrimSpace(v[0])
				b.Content = strings.TrimSpace(v[1])
				b.Image = strings.TrimSpace(v[2])
				return b, nil
			},
		},
		adminSpec[model.Review]{
			name:     "Reviews",
			resource: catalog.Admin.Reviews,
			id:       func(r model.Review) string { return r.ID },
			row: func(r model.Review) (string, string) {
				return fmt.Sprintf("%.0f★ %s", r.Rating, r.Content), "product " + r.ProductID
			},
			fields: []dialog.InputField{
				{Label: "Product ID", Validate: required("product id")},
				{Label: "Customer ID", Validate: required("customer id")},
				{Label: "Rating", CharLimit: 1, Validate: validateRating},
				{Label: "Content", CharLimit: 2000, Validate: required("content")},
			},
			values: func(r model.Review) []string {
				return []string{r.ProductID, r.CustomerID, strconv.Itoa(int(r.Rating)), r.Content}
			},
			apply: func(r model.Review, v []string) (model.Review, error) {
				rating, err := strconv.Atoi(strings.TrimSpace(v[2]))
				if err != nil {
					return r, err
				}
				r.ProductID = strings.TrimSpace(v[0])
				r.CustomerID = strings.TrimSpace(v[1])
				r.Rating = float64(rating)
				r.Content = strings.TrimSpace(v[3])
				return r, nil
			},
		},
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
