// Package adminpanel renders the admin console: one list per catalog
// resource with a section switcher on top.
package adminpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/ui/styles"
)

// Row is one entity of the active section.
type Row struct {
	ID     string
	Title  string
	Detail string
	// Source is the decoded entity, kept so an edit can start from it.
	Source any
}

// Model is the admin console component.
type Model struct {
	sections []string
	section  int
	rows     []Row
	cursor   int
	offset   int
	loading  bool
	err      string
	width    int
	height   int
	focused  bool
}

// New creates a console over the named sections.
func New(sections ...string) Model {
	return Model{sections: append([]string(nil), sections...)}
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

// SetLoading toggles the loading placeholder and clears the last error.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
	if loading {
		m.err = ""
	}
}

// Section returns the index of the active section.
func (m Model) Section() int {
	return m.section
}

// SectionName returns the name of the active section.
func (m Model) SectionName() string {
	if m.section < len(m.sections) {
		return m.sections[m.section]
	}
	return ""
}

// NextSection activates the next section and empties the list.
func (m *Model) NextSection() {
	m.switchTo(m.section + 1)
}

// PrevSection activates the previous section and empties the list.
func (m *Model) PrevSection() {
	m.switchTo(m.section - 1)
}

func (m *Model) switchTo(i int) {
	n := len(m.sections)
	if n == 0 {
		return
	}
	m.section = (i%n + n) % n
	m.rows = nil
	m.cursor = 0
	m.offset = 0
	m.err = ""
}

// SetRows replaces the list of section. Rows for another section than the
// active one are dropped.
func (m *Model) SetRows(section int, rows []Row, err error) {
	if section != m.section {
		return
	}
	m.loading = false
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// Rows returns the rows shown.
func (m Model) Rows() []Row {
	return m.rows
}

// Selected returns the row under the cursor.
func (m Model) Selected() *Row {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		r := m.rows[m.cursor]
		return &r
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
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.rows)-1, 0)
	default:
		return false
	}
	m.ensureVisible()
	return true
}

func (m Model) listRows() int {
	// border, title, switcher and two rules
	return max(m.height-7, 1)
}

func (m *Model) ensureVisible() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View renders the console.
func (m Model) View() string {
	innerWidth := max(m.width-4, 10)

	title := styles.PanelTitleIcon.Render(styles.IconAdmin) + styles.PanelTitleFocused.Render("Admin")
	if m.loading {
		title += " " + styles.ListItemDim.Render("loading...")
	}

	switcher := make([]string, len(m.sections))
	for i, s := range m.sections {
		if i == m.section {
			switcher[i] = styles.TableHeader.Render("[" + s + "]")
		} else {
			switcher[i] = styles.ListItemDim.Render(s)
		}
	}

	lines := []string{
		title,
		strings.Join(switcher, " "),
		strings.Repeat("─", innerWidth),
	}

	switch {
	case m.err != "":
		lines = append(lines, styles.ErrorText.Render(styles.IconError+" "+m.err))
	case len(m.rows) == 0 && !m.loading:
		lines = append(lines, styles.Placeholder.Render("Nothing here yet"),
			styles.ListItemDim.Render("Press 'a' to add, 'r' to reload"))
	default:
		end := min(m.offset+m.listRows(), len(m.rows))
		idWidth := min(12, innerWidth/4)
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderRow(m.rows[i], i == m.cursor, idWidth, innerWidth))
		}
	}

	lines = append(lines, strings.Repeat("─", innerWidth),
		styles.ListItemDim.Render(fmt.Sprintf("%d %s · ←/→ section · a add · e edit · d delete", len(m.rows), m.SectionName())))

	border := styles.BorderStyle
	if m.focused {
		border = styles.FocusedBorderStyle
	}
	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderRow(r Row, selected bool, idWidth, width int) string {
	id := styles.TruncateWithEllipsis(r.ID, idWidth)
	id += strings.Repeat(" ", idWidth-lipgloss.Width(id))
	rest := max(width-idWidth-6, 1)
	text := r.Title
	if r.Detail != "" {
		text += " · " + r.Detail
	}
	line := id + "  " + styles.TruncateWithEllipsis(text, rest)
	if selected && m.focused {
		return styles.ListItemSelected.Render("› " + line)
	}
	return styles.ListItem.Render("  " + line)
}
