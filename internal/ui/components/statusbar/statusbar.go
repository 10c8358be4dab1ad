// Package statusbar provides the status bar UI component.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/ui/keys"
	"github.com/lazyvibe/storefront/internal/ui/styles"
)

// Model is the status bar component.
type Model struct {
	width        int
	message      string
	isError      bool
	keyMap       keys.KeyMap
	cartCount    int
	compareCount int
	userLabel    string
	cartTotal    string
}

// New creates a new status bar component.
func New() Model {
	return Model{
		keyMap: keys.DefaultKeyMap(),
	}
}

// SetWidth updates the status bar width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetMessage sets a temporary message.
func (m *Model) SetMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

// ClearMessage clears the temporary message.
func (m *Model) ClearMessage() {
	m.message = ""
	m.isError = false
}

// Message returns the current message.
func (m Model) Message() (string, bool) {
	return m.message, m.isError
}

// SetCounts updates the cart and comparison badges. total is the
// formatted cart total.
func (m *Model) SetCounts(cart, compare int, total string) {
	m.cartCount = cart
	m.compareCount = compare
	m.cartTotal = total
}

// SetUser sets the signed-in user label. Empty means anonymous.
func (m *Model) SetUser(label string) {
	m.userLabel = strings.TrimSpace(label)
}

// View renders the status bar.
func (m Model) View() string {
	brand := styles.StatusBarBrand.Render(" Storefront ")

	user := m.userLabel
	if user == "" {
		user = "GUEST"
	}
	userBadge := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(styles.Accent).
		Bold(true).
		Padding(0, 1).
		Render(styles.TruncateWithEllipsis(user, 24))

	helpItems := make([]string, 0, len(m.keyMap.ShortHelp()))
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		helpItems = append(helpItems, m.renderKey(h.Key, h.Desc))
	}
	help := strings.Join(helpItems, " ")

	counts := lipgloss.NewStyle().
		Foreground(styles.InCartColor).
		Render(fmt.Sprintf(" %s %d", styles.IconCart, m.cartCount))
	if m.cartTotal != "" && m.cartCount > 0 {
		counts += styles.TotalStyle.Render(" " + m.cartTotal)
	}
	counts += lipgloss.NewStyle().
		Foreground(styles.InCompareColor).
		Render(fmt.Sprintf(" %s %d ", styles.IconCompare, m.compareCount))

	var msgArea string
	if m.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		if m.isError {
			msgStyle = lipgloss.NewStyle().Foreground(styles.Danger).Bold(true)
		}
		msgArea = msgStyle.Render(" " + m.message + " ")
	}

	leftContent := brand + userBadge + counts
	rightContent := help

	// Help is dropped first when the bar is too narrow.
	if lipgloss.Width(leftContent)+lipgloss.Width(msgArea)+lipgloss.Width(rightContent) > m.width {
		rightContent = m.renderKey("?", "help")
	}

	padding := m.width - lipgloss.Width(leftContent) - lipgloss.Width(msgArea) - lipgloss.Width(rightContent)
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	content := leftContent +
		strings.Repeat(" ", leftPad) +
		msgArea +
		strings.Repeat(" ", rightPad) +
		rightContent

	return lipgloss.NewStyle().
		Background(styles.Mantle).
		Foreground(styles.TextMuted).
		Width(m.width).
		Render(content)
}

// renderKey renders a key binding hint.
func (m Model) renderKey(key, desc string) string {
	return styles.StatusBarKey.Render(key) + styles.StatusBarDesc.Render(":"+desc)
}
