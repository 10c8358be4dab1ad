// Package tabs provides the section tab bar.
package tabs

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/ui/styles"
)

// Tab is one section of the app.
type Tab struct {
	ID   string
	Name string
	Icon string
	// Count is shown as a badge when positive.
	Count int
	// Updated is set when Count changes while the tab is in the background.
	Updated bool
	// Hidden tabs are neither drawn nor reachable by NextTab and PrevTab.
	Hidden bool
}

// Model is the tab bar component.
type Model struct {
	tabs   []Tab
	active int
	width  int
}

// New creates a tab bar with the given tabs. The first tab is active.
func New(tabs ...Tab) Model {
	return Model{tabs: append([]Tab(nil), tabs...)}
}

// SetWidth sets the component width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetCount updates the badge of tab id.
func (m *Model) SetCount(id string, count int) {
	i := m.index(id)
	if i < 0 {
		return
	}
	if m.tabs[i].Count != count && i != m.active {
		m.tabs[i].Updated = true
	}
	m.tabs[i].Count = count
}

// SetActiveTab activates tab id. Unknown and hidden ids are ignored.
func (m *Model) SetActiveTab(id string) {
	if i := m.index(id); i >= 0 && !m.tabs[i].Hidden {
		m.activate(i)
	}
}

// SetHidden shows or hides tab id. Hiding the active tab activates the first
// visible tab.
func (m *Model) SetHidden(id string, hidden bool) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.tabs[i].Hidden = hidden
	if hidden && i == m.active {
		m.active = 0
		if m.tabs[0].Hidden {
			m.step(1)
			return
		}
		m.tabs[0].Updated = false
	}
}

// ActiveID returns the ID of the active tab.
func (m Model) ActiveID() string {
	if m.active < len(m.tabs) {
		return m.tabs[m.active].ID
	}
	return ""
}

// NextTab switches to the next visible tab, wrapping around.
func (m *Model) NextTab() {
	m.step(1)
}

// PrevTab switches to the previous visible tab, wrapping around.
func (m *Model) PrevTab() {
	m.step(-1)
}

func (m *Model) step(delta int) {
	for i := 1; i <= len(m.tabs); i++ {
		next := m.active + delta*i
		n := len(m.tabs)
		if !m.tabs[(next%n+n)%n].Hidden {
			m.activate(next)
			return
		}
	}
}

// Tabs returns a copy of the tabs.
func (m Model) Tabs() []Tab {
	return append([]Tab(nil), m.tabs...)
}

func (m Model) index(id string) int {
	for i, t := range m.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) activate(i int) {
	n := len(m.tabs)
	if n == 0 {
		return
	}
	m.active = (i%n + n) % n
	m.tabs[m.active].Updated = false
}

// View renders the tab bar. When the tabs do not fit, the active tab is
// kept and neighbours are added while there is room.
func (m Model) View() string {
	if len(m.tabs) == 0 {
		return ""
	}

	var (
		rendered []string
		active   int
	)
	for i, t := range m.tabs {
		if t.Hidden {
			continue
		}
		if i == m.active {
			active = len(rendered)
		}
		rendered = append(rendered, m.renderTab(i, t))
	}
	if len(rendered) == 0 {
		return styles.TabBar.Width(m.width).Render("")
	}

	from, to := window(rendered, active, m.width)
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered[from:to]...)
	return styles.TabBar.Width(m.width).Render(row)
}

func (m Model) renderTab(i int, t Tab) string {
	label := t.Name
	if t.Icon != "" {
		label = t.Icon + " " + label
	}
	if t.Count > 0 {
		label += " " + styles.TabCount.Render(fmt.Sprintf("%d", t.Count))
	}

	switch {
	case i == m.active:
		return styles.TabActive.Render(label)
	case t.Updated:
		return styles.TabUpdated.Render(label)
	default:
		return styles.Tab.Render(label)
	}
}

// window returns the half-open range of rendered tabs that fits width.
func window(rendered []string, active, width int) (int, int) {
	if width <= 0 {
		return 0, len(rendered)
	}
	from, to := active, active+1
	used := lipgloss.Width(rendered[active])
	for grew := true; grew; {
		grew = false
		if to < len(rendered) {
			if w := lipgloss.Width(rendered[to]); used+w <= width {
				used += w
				to++
				grew = true
			}
		}
		if from > 0 {
			if w := lipgloss.Width(rendered[from-1]); used+w <= width {
				used += w
				from--
				grew = true
			}
		}
	}
	return from, to
}
