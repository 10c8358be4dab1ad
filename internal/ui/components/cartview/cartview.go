// Package cartview renders the cart: line items with quantities and totals.
package cartview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/ui/styles"
	"github.com/lazyvibe/storefront/pkg/utils"
)

// Model is the cart component.
type Model struct {
	items       []model.Item
	count       int
	total       decimal.Decimal
	cursor      int
	offset      int
	width       int
	height      int
	focused     bool
	currency    string
	checkoutURL string
}

// New creates an empty cart view.
func New(currency string) Model {
	return Model{currency: currency}
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

// SetItems replaces the cart contents and aggregates.
func (m *Model) SetItems(items []model.Item, count int, total decimal.Decimal) {
	m.items = items
	m.count = count
	m.total = total
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// SetCheckoutURL shows the hosted checkout link under the totals.
func (m *Model) SetCheckoutURL(url string) {
	m.checkoutURL = url
}

// Items returns the items shown.
func (m Model) Items() []model.Item {
	return m.items
}

// Selected returns the item under the cursor.
func (m Model) Selected() *model.Item {
	if m.cursor >= 0 && m.cursor < len(m.items) {
		it := m.items[m.cursor]
		return &it
	}
	return nil
}

// HandleKey processes a navigation key.
func (m *Model) HandleKey(key string) bool {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
		return true
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.ensureVisible()
		}
		return true
	}
	return false
}

func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m Model) visibleRows() int {
	rows := m.height - 9
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the cart.
func (m Model) View() string {
	innerWidth := m.width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}

	header := styles.PanelTitleIcon.Render(styles.IconCart) + styles.PanelTitleFocused.Render("Cart") +
		" " + styles.ListItemDim.Render(fmt.Sprintf("(%d)", m.count))

	priceCol := 16
	qtyCol := 5
	nameCol := innerWidth - 2*priceCol - qtyCol - 4
	if nameCol < 8 {
		nameCol = 8
	}

	rows := []string{
		header,
		strings.Repeat("─", innerWidth),
	}

	if len(m.items) == 0 {
		rows = append(rows, "", styles.Placeholder.Render("Your cart is empty"),
			styles.ListItemDim.Render("Press 'c' on a product in the catalog to add it"))
	} else {
		rows = append(rows, styles.TableLabel.Render(
			pad("Item", nameCol)+pad("Qty", qtyCol)+padLeft("Price", priceCol)+padLeft("Total", priceCol)))

		end := m.offset + m.visibleRows()
		if end > len(m.items) {
			end = len(m.items)
		}
		for i := m.offset; i < end; i++ {
			rows = append(rows, m.renderLine(m.items[i], i == m.cursor, nameCol, qtyCol, priceCol))
		}
	}

	footer := styles.TotalStyle.Render("Total: " + utils.FormatPrice(m.total, m.currency))
	if m.checkoutURL != "" {
		footer += "\n" + styles.ListItemHighlight.Render("Checkout: "+m.checkoutURL)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(m.height-6).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		strings.Repeat("─", innerWidth),
		footer,
	)

	border := styles.BorderStyle
	if m.focused {
		border = styles.FocusedBorderStyle
	}
	return border.Width(m.width - 2).Render(content)
}

func (m Model) renderLine(it model.Item, selected bool, nameCol, qtyCol, priceCol int) string {
	name := styles.TruncateWithEllipsis(it.Name, nameCol-3)
	if name == "" {
		name = it.ID
	}
	line := pad(name, nameCol) +
		pad(fmt.Sprintf("×%d", it.Quantity), qtyCol) +
		padLeft(utils.FormatPrice(it.DiscountedPrice, m.currency), priceCol) +
		padLeft(utils.FormatPrice(it.TotalPrice, m.currency), priceCol)
	if selected && m.focused {
		return styles.ListItemSelected.Render("› " + line)
	}
	return styles.ListItem.Render("  " + line)
}

func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
