// Package productlist provides the catalog product list component.
package productlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/collection"
	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/ui/styles"
	"github.com/lazyvibe/storefront/pkg/utils"
)

// Item represents a product in the list.
type Item struct {
	Product   model.Product
	InCart    bool
	InCompare bool
}

// Model is the product list component.
type Model struct {
	items    []Item
	cursor   int
	focused  bool
	width    int
	height   int
	offset   int // For scrolling
	page     int
	query    string
	filter   string
	loading  bool
	currency string
}

// New creates a new product list component.
func New(currency string) Model {
	return Model{
		items:    []Item{},
		currency: currency,
	}
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

// SetPage records the page index and search query shown in the header.
func (m *Model) SetPage(page int, query string) {
	m.page = page
	m.query = query
}

// SetFilter records the active taxonomy filter. A filtered list is not paged.
func (m *Model) SetFilter(label string) {
	m.filter = label
}

// SetProducts replaces the list. The cursor is kept when still in range.
func (m *Model) SetProducts(products []model.Product, inCart, inCompare func(id string) bool) {
	m.items = make([]Item, len(products))
	for i, p := range products {
		m.items[i] = Item{Product: p}
	}
	m.SetMembership(inCart, inCompare)
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.offset = 0
	m.ensureVisible()
}

// SetMembership refreshes the cart and comparison markers.
func (m *Model) SetMembership(inCart, inCompare func(id string) bool) {
	for i := range m.items {
		id := m.items[i].Product.ID
		m.items[i].InCart = inCart != nil && inCart(id)
		m.items[i].InCompare = inCompare != nil && inCompare(id)
	}
}

// SelectedProduct returns the currently selected product.
func (m Model) SelectedProduct() *model.Product {
	if m.cursor >= 0 && m.cursor < len(m.items) {
		p := m.items[m.cursor].Product
		return &p
	}
	return nil
}

// SelectedIndex returns the index of the selected item.
func (m Model) SelectedIndex() int {
	return m.cursor
}

// ItemCount returns the number of items.
func (m Model) ItemCount() int {
	return len(m.items)
}

// CursorUp moves cursor up.
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
		m.ensureVisible()
	}
}

// CursorDown moves cursor down.
func (m *Model) CursorDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
		m.ensureVisible()
	}
}

func (m *Model) ensureVisible() {
	visibleRows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visibleRows {
		m.offset = m.cursor - visibleRows + 1
	}
}

func (m Model) listRows() int {
	rows := m.height - 4 - detailHeight - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// HandleKey processes a navigation key.
func (m *Model) HandleKey(key string) bool {
	switch key {
	case "up", "k":
		m.CursorUp()
		return true
	case "down", "j":
		m.CursorDown()
		return true
	case "home", "g":
		m.cursor = 0
		m.offset = 0
		return true
	case "end", "G":
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
		m.ensureVisible()
		return true
	}
	return false
}

const detailHeight = 6

// View renders the product list.
func (m Model) View() string {
	innerWidth := m.width - 4
	innerHeight := m.height - 4
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	icon := styles.PanelTitleIcon.Render(styles.IconCatalog)
	title := "Catalog"
	if m.focused {
		title = styles.PanelTitleFocused.Render(title)
	} else {
		title = styles.PanelTitle.Render(title)
	}
	info := fmt.Sprintf("page %d", m.page+1)
	if m.filter != "" {
		info = "filter " + m.filter
	}
	if m.query != "" {
		info += fmt.Sprintf(" · %q", m.query)
	}
	header := icon + title + " " + styles.ListItemDim.Render(info)

	var rows []string
	showDetails := innerHeight >= detailHeight+2
	listArea := innerHeight
	if showDetails {
		listArea = innerHeight - detailHeight - 1
	}

	switch {
	case m.loading:
		rows = append(rows, "", styles.Placeholder.Render("Loading products..."))
	case len(m.items) == 0:
		rows = append(rows, "", styles.Placeholder.Render("No products found"),
			styles.ListItemDim.Render("Press 'r' to reload or '/' to search"))
	default:
		visibleRows := listArea
		if len(m.items) > listArea {
			visibleRows = listArea - 1
			if visibleRows < 1 {
				visibleRows = 1
			}
		}

		endIdx := m.offset + visibleRows
		if endIdx > len(m.items) {
			endIdx = len(m.items)
		}

		for i := m.offset; i < endIdx; i++ {
			rows = append(rows, m.renderItem(m.items[i], i == m.cursor, innerWidth-2))
		}

		if len(m.items) > visibleRows {
			rows = append(rows, styles.ListItemDim.Render(fmt.Sprintf(" %d/%d ", m.cursor+1, len(m.items))))
		}
	}

	listContent := lipgloss.NewStyle().
		Width(innerWidth).
		Height(listArea).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	content := listContent
	if showDetails {
		separator := strings.Repeat("─", innerWidth)
		content = lipgloss.JoinVertical(lipgloss.Left, listContent, separator, m.renderDetails(innerWidth, detailHeight))
	}

	borderStyle := styles.BorderStyle
	if m.focused {
		borderStyle = styles.FocusedBorderStyle
	}

	return borderStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			strings.Repeat("─", innerWidth),
			content,
		))
}

func (m Model) renderItem(item Item, selected bool, maxWidth int) string {
	marks := styles.RenderMembership(item.InCart, item.InCompare) + " "
	price := utils.FormatPrice(item.Product.Price, m.currency)
	priceWidth := lipgloss.Width(price)

	nameWidth := maxWidth - lipgloss.Width(marks) - priceWidth - 5
	name := styles.TruncateWithEllipsis(item.Product.ModelName, nameWidth)
	gap := maxWidth - lipgloss.Width(marks) - lipgloss.Width(name) - priceWidth - 4
	if gap < 1 {
		gap = 1
	}

	var rowStyle lipgloss.Style
	if selected {
		if m.focused {
			rowStyle = lipgloss.NewStyle().
				Foreground(styles.TextCol).
				Background(styles.SurfaceCol).
				Bold(true).
				Width(maxWidth).
				Padding(0, 1)
		} else {
			rowStyle = lipgloss.NewStyle().
				Foreground(styles.TextCol).
				Background(styles.Surface1).
				Width(maxWidth).
				Padding(0, 1)
		}
		name = "› " + name
	} else {
		rowStyle = lipgloss.NewStyle().
			Foreground(styles.Subtext1).
			Width(maxWidth).
			Padding(0, 1)
		name = "  " + name
	}

	return rowStyle.Render(marks + name + strings.Repeat(" ", gap) + price)
}

func (m Model) renderDetails(width, height int) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextCol)
	titleStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Bold(true)

	lines := []string{titleStyle.Render("Details")}

	p := m.SelectedProduct()
	if p == nil {
		lines = append(lines, labelStyle.Render("No product selected"))
	} else {
		item := model.ItemFromProduct(*p, 1)
		discount := collection.EffectiveDiscount(item)
		price := styles.OldPriceStyle.Render(utils.FormatPrice(p.Price, m.currency)) + " " +
			styles.PriceStyle.Render(utils.FormatPrice(collection.DiscountedPrice(item), m.currency)) + " " +
			styles.DiscountBadge.Render(utils.FormatPercent(discount))

		specs := p.Specifications
		summary := strings.Join(nonEmpty(specs.CPU, specs.RAM, specs.Storage, specs.ScreenSize), " · ")

		lines = append(lines,
			renderDetailLine(labelStyle, valueStyle, "Brand: ", strings.Join(nonEmpty(p.Brand, p.Type, p.Category), " / "), width),
			labelStyle.Render("Price: ")+price,
			renderDetailLine(labelStyle, valueStyle, "Specs: ", summary, width),
		)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
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

func renderDetailLine(labelStyle, valueStyle lipgloss.Style, label, value string, width int) string {
	if width < 1 {
		return ""
	}
	labelRendered := labelStyle.Render(label)
	avail := width - lipgloss.Width(labelRendered)
	if avail < 0 {
		avail = 0
	}
	return labelRendered + valueStyle.Render(styles.TruncateWithEllipsis(value, avail))
}
