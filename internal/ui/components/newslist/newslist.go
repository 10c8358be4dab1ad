// Package newslist renders blog posts and, for a selected product, its reviews.
package newslist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/ui/styles"
)

// Model is the news component.
type Model struct {
	posts   []model.BlogPost
	reviews []model.Review
	// productID and product name the product the reviews belong to.
	productID string
	product   string
	cursor    int
	width     int
	height    int
	focused   bool
	loading   bool
}

// New creates an empty news component.
func New() Model {
	return Model{}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused updates the focus state.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetLoading toggles the loading placeholder.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetPosts replaces the posts.
func (m *Model) SetPosts(posts []model.BlogPost) {
	m.posts = posts
	if m.cursor >= len(posts) {
		m.cursor = 0
	}
}

// SetReviews shows the reviews of a product below the posts.
func (m *Model) SetReviews(productID, product string, reviews []model.Review) {
	m.productID = productID
	m.product = product
	m.reviews = reviews
}

// ReviewTarget returns the product whose reviews are shown, if any.
func (m Model) ReviewTarget() (id, name string, ok bool) {
	return m.productID, m.product, m.productID != ""
}

// ShowPost replaces the post with the same ID, typically with its full
// content, and selects it.
func (m *Model) ShowPost(post model.BlogPost) {
	for i := range m.posts {
		if m.posts[i].ID == post.ID {
			m.posts[i] = post
			m.cursor = i
			return
		}
	}
}

// Selected returns the post under the cursor.
func (m Model) Selected() *model.BlogPost {
	if m.cursor >= 0 && m.cursor < len(m.posts) {
		p := m.posts[m.cursor]
		return &p
	}
	return nil
}

// HandleKey processes a navigation key.
func (m *Model) HandleKey(key string) bool {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
		return true
	}
	return false
}

// View renders the news panel.
func (m Model) View() string {
	innerWidth := m.width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	lines := []string{
		styles.PanelTitleIcon.Render(styles.IconNews) + styles.PanelTitleFocused.Render("News"),
		strings.Repeat("─", innerWidth),
	}

	switch {
	case m.loading:
		lines = append(lines, styles.Placeholder.Render("Loading..."))
	case len(m.posts) == 0:
		lines = append(lines, styles.Placeholder.Render("No news yet"))
	default:
		for i, p := range m.posts {
			title := styles.TruncateWithEllipsis(p.Title, innerWidth-16)
			date := ""
			if !p.CreatedAt.IsZero() {
				date = p.CreatedAt.Format("2006-01-02")
			}
			row := fmt.Sprintf("%-*s %s", innerWidth-14, title, date)
			if i == m.cursor && m.focused {
				lines = append(lines, styles.ListItemSelected.Render("› "+row))
			} else {
				lines = append(lines, styles.ListItem.Render("  "+row))
			}
		}
		if sel := m.Selected(); sel != nil && sel.Content != "" {
			lines = append(lines, "", lipgloss.NewStyle().
				Foreground(styles.Subtext1).
				Width(innerWidth).
				MaxHeight(6).
				Render(sel.Content))
		}
	}

	if m.product != "" {
		lines = append(lines, "", styles.SectionHeader.Render("Reviews · "+m.product))
		if len(m.reviews) == 0 {
			lines = append(lines, styles.ListItemDim.Render("No reviews"))
		}
		for _, r := range m.reviews {
			text := styles.TruncateWithEllipsis(strings.ReplaceAll(r.Content, "\n", " "), innerWidth-8)
			lines = append(lines, styles.RenderStars(r.Rating)+" "+text)
		}
	}

	border := styles.BorderStyle
	if m.focused {
		border = styles.FocusedBorderStyle
	}
	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
