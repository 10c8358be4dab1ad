package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/ui/styles"
)

// View renders the entire application.
func (a App) View() string {
	if a.quitting {
		bye := lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Primary).
			Render("👋 Thanks for shopping!")
		return a.centered(bye)
	}

	if !a.ready {
		loading := lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Accent).
			Render("⚡ Loading Storefront...")
		return a.centered(loading)
	}

	if a.windowTooSmall() {
		notice := lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Accent).
			Render(fmt.Sprintf("Window too small: need at least %dx%d (now %dx%d)", minAppWidth, minAppHeight, a.width, a.height))
		return a.centered(notice)
	}

	var content string
	switch a.tabs.ActiveID() {
	case TabCatalog:
		content = a.productList.View()
	case TabCart:
		content = a.cartView.View()
	case TabCompare:
		content = a.compareTable.View()
	case TabNews:
		content = a.newsList.View()
	case TabAdmin:
		content = a.adminPanel.View()
	}

	fullView := lipgloss.JoinVertical(
		lipgloss.Left,
		a.tabs.View(),
		content,
		a.statusBar.View(),
	)

	if a.showHelp {
		return a.overlay(styles.DialogBox.Render(
			styles.DialogTitle.Render("Keys") + "\n" + a.help.FullHelpView(a.keys.FullHelp()),
		))
	}

	if a.dialogMode != DialogNone {
		return a.renderWithDialog(fullView)
	}

	return fullView
}

func (a App) centered(s string) string {
	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(s)
}

// renderWithDialog overlays a dialog on top of the main view.
func (a App) renderWithDialog(_ string) string {
	var dialogView string
	switch a.dialogMode {
	case DialogQuantity:
		dialogView = a.quantityDialog.View()
	case DialogSearch:
		dialogView = a.searchDialog.View()
	case DialogLogin:
		dialogView = a.loginDialog.View()
	case DialogRegister:
		dialogView = a.registerDialog.View()
	case DialogFilter:
		dialogView = a.filterDialog.View()
	case DialogReview:
		dialogView = a.reviewDialog.View()
	case DialogAdminForm, DialogAdminDelete:
		dialogView = a.adminDialog.View()
	}
	return a.overlay(dialogView)
}

func (a App) overlay(view string) string {
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		view,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("#00000000")),
	)
}
