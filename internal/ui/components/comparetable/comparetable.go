// Package comparetable renders the comparison list as a side-by-side
// specification table.
package comparetable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lazyvibe/storefront/internal/collection"
	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/ui/styles"
	"github.com/lazyvibe/storefront/pkg/utils"
)

const (
	labelWidth  = 20
	columnWidth = 24
)

// Model is the comparison table component.
type Model struct {
	items    []model.Item
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	currency string
}

// New creates an empty comparison table.
func New(currency string) Model {
	return Model{currency: currency}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetFocused updates the focus state.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetItems replaces the compared items.
func (m *Model) SetItems(items []model.Item) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// Selected returns the item in the highlighted column.
func (m Model) Selected() *model.Item {
	if m.cursor >= 0 && m.cursor < len(m.items) {
		it := m.items[m.cursor]
		return &it
	}
	return nil
}

// HandleKey moves the highlighted column.
func (m *Model) HandleKey(key string) bool {
	switch key {
	case "left", "h", "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
		return true
	case "right", "l", "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.ensureVisible()
		}
		return true
	}
	return false
}

// visibleColumns is how many item columns fit next to the label column.
func (m Model) visibleColumns() int {
	n := (m.width - 4 - labelWidth) / columnWidth
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) ensureVisible() {
	n := m.visibleColumns()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Rows returns the table body for items: fixed attributes then the union of
// specification keys.
func Rows(items []model.Item, currency string) [][]string {
	fixed := []struct {
		label string
		value func(model.Item) string
	}{
		{"Price", func(it model.Item) string { return utils.FormatPrice(it.Price, currency) }},
		{"With discount", func(it model.Item) string {
			return utils.FormatPrice(collection.DiscountedPrice(it), currency)
		}},
		{"Brand", func(it model.Item) string { return it.Brand }},
		{"Type", func(it model.Item) string { return it.Type }},
	}

	var rows [][]string
	for _, f := range fixed {
		row := []string{f.label}
		for _, it := range items {
			row = append(row, dash(f.value(it)))
		}
		rows = append(rows, row)
	}
	for _, k := range collection.SpecKeys(items) {
		row := []string{Label(k)}
		for _, it := range items {
			row = append(row, dash(it.Specifications[k]))
		}
		rows = append(rows, row)
	}
	return rows
}

// Label turns a specification key such as "screen_refresh_rate" into
// "Screen refresh rate".
func Label(key string) string {
	s := strings.ReplaceAll(strings.TrimSpace(key), "_", " ")
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	return strings.ReplaceAll(s, "Cpu", "CPU")
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// View renders the comparison table.
func (m Model) View() string {
	innerWidth := m.width - 4
	if innerWidth < 1 {
		innerWidth = 1
	}
	header := styles.PanelTitleIcon.Render(styles.IconCompare) + styles.PanelTitleFocused.Render("Compare") +
		" " + styles.ListItemDim.Render(fmt.Sprintf("(%d)", len(m.items)))

	var body string
	if len(m.items) == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, "",
			styles.Placeholder.Render("Your comparison list is empty"),
			styles.ListItemDim.Render("Press 'm' on a product in the catalog to compare it"))
	} else {
		body = m.renderTable()
	}

	border := styles.BorderStyle
	if m.focused {
		border = styles.FocusedBorderStyle
	}
	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, strings.Repeat("─", innerWidth), body))
}

func (m Model) renderTable() string {
	end := m.offset + m.visibleColumns()
	if end > len(m.items) {
		end = len(m.items)
	}
	window := m.items[m.offset:end]

	headers := []string{""}
	for _, it := range window {
		name := it.Name
		if name == "" {
			name = it.ID
		}
		headers = append(headers, styles.TruncateWithEllipsis(name, columnWidth-2))
	}

	selectedCol := m.cursor - m.offset + 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Border)).
		Headers(headers...).
		Rows(Rows(window, m.currency)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case col == 0:
				return styles.TableLabel.Width(labelWidth)
			case row == table.HeaderRow:
				return styles.TableHeader.Width(columnWidth)
			case col == selectedCol && m.focused:
				return styles.TableSelected.Width(columnWidth)
			default:
				return styles.TableCell.Width(columnWidth)
			}
		})

	out := t.String()
	if len(m.items) > len(window) {
		out += "\n" + styles.ListItemDim.Render(fmt.Sprintf(" %d-%d of %d  ←/→ to scroll", m.offset+1, end, len(m.items)))
	}
	return out
}
