// Package styles holds the colors, styles and icons shared by the storefront
// components.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Palette (Catppuccin Mocha).
var (
	Pink     = lipgloss.Color("#F5C2E7")
	Mauve    = lipgloss.Color("#CBA6F7")
	Red      = lipgloss.Color("#F38BA8")
	Yellow   = lipgloss.Color("#F9E2AF")
	Green    = lipgloss.Color("#A6E3A1")
	Sapphire = lipgloss.Color("#74C7EC")
	Text     = lipgloss.Color("#CDD6F4")
	Subtext1 = lipgloss.Color("#BAC2DE")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay1 = lipgloss.Color("#7F849C")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface1 = lipgloss.Color("#45475A")
	Surface0 = lipgloss.Color("#313244")
	Base     = lipgloss.Color("#1E1E2E")
	Mantle   = lipgloss.Color("#181825")
)

// Roles
var (
	Primary     = Mauve
	Secondary   = Green
	Accent      = Sapphire
	Danger      = Red
	SurfaceCol  = Surface0
	TextCol     = Text
	TextMuted   = Subtext0
	Border      = Surface1
	BorderFocus = Mauve
)

// Collection membership colors
var (
	InCartColor    = Green
	InCompareColor = Sapphire
	AbsentColor    = Overlay0
)

// Panel borders
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderFocus)
)

// Panel styles
var (
	// PanelTitle for panel headers
	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			Padding(0, 1)

	// PanelTitleFocused for focused panel headers
	PanelTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				Padding(0, 1)

	// PanelTitleIcon for icon prefix
	PanelTitleIcon = lipgloss.NewStyle().
			Foreground(Accent).
			MarginRight(1)
)

// List item styles
var (
	// ListItem for normal list items
	ListItem = lipgloss.NewStyle().
			Foreground(TextCol).
			Padding(0, 1)

	// ListItemSelected for selected list items
	ListItemSelected = lipgloss.NewStyle().
				Foreground(TextCol).
				Background(SurfaceCol).
				Bold(true).
				Padding(0, 1)

	// ListItemDim for inactive/dimmed items
	ListItemDim = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	// ListItemHighlight for highlighted items
	ListItemHighlight = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Padding(0, 1)
)

// Price styles
var (
	PriceStyle = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)

	OldPriceStyle = lipgloss.NewStyle().
			Foreground(Overlay1).
			Strikethrough(true)

	DiscountBadge = lipgloss.NewStyle().
			Foreground(Base).
			Background(Red).
			Bold(true).
			Padding(0, 1)

	TotalStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)
)

// StatusBar styles
var (
	StatusBarKey = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	StatusBarDesc = lipgloss.NewStyle().
			Foreground(Overlay0)

	StatusBarBrand = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Placeholder styles
var (
	Placeholder = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)

	SectionHeader = lipgloss.NewStyle().
			Background(Surface0).
			Foreground(TextCol).
			Bold(true).
			Padding(0, 1)
)

// Table styles for the comparison view
var (
	TableHeader = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Foreground(TextCol).
			Padding(0, 1)

	TableLabel = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	TableSelected = lipgloss.NewStyle().
			Foreground(TextCol).
			Background(SurfaceCol).
			Bold(true).
			Padding(0, 1)
)

// Tab bar
var (
	TabBar = lipgloss.NewStyle().
		Background(Base).
		Padding(0, 1)

	Tab = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2).
		MarginRight(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Surface0)

	TabActive = Tab.
			Foreground(TextCol).
			Bold(true).
			BorderForeground(Primary)

	// TabUpdated marks a background tab whose badge changed.
	TabUpdated = Tab.
			Foreground(Accent).
			BorderForeground(Pink)

	TabCount = lipgloss.NewStyle().
			Foreground(Base).
			Background(Secondary).
			Bold(true).
			Padding(0, 1)
)

// Form fields
var (
	Label = lipgloss.NewStyle().
		Foreground(TextMuted)

	LabelFocused = lipgloss.NewStyle().
			Foreground(Pink).
			Bold(true)

	Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Padding(0, 1)

	InputFocused = Input.
			BorderForeground(Primary)

	ErrorText = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Help = lipgloss.NewStyle().
		Foreground(Overlay0).
		MarginTop(1)
)

// Dialogs
var (
	DialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			Background(SurfaceCol)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			MarginBottom(1)
)

// RenderMembership returns the cart and comparison markers of a product.
func RenderMembership(inCart, inCompare bool) string {
	cart := lipgloss.NewStyle().Foreground(AbsentColor).Render(IconDotEmpty)
	if inCart {
		cart = lipgloss.NewStyle().Foreground(InCartColor).Render(IconCart)
	}
	compare := lipgloss.NewStyle().Foreground(AbsentColor).Render(IconDotEmpty)
	if inCompare {
		compare = lipgloss.NewStyle().Foreground(InCompareColor).Render(IconCompare)
	}
	return cart + compare
}

// TruncateWithEllipsis truncates s to maxWidth display cells with an ellipsis.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate(s, maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// RenderStars renders a 0-5 rating.
func RenderStars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return lipgloss.NewStyle().Foreground(Yellow).Render(strings.Repeat(IconStar, full)) +
		lipgloss.NewStyle().Foreground(Overlay0).Render(strings.Repeat(IconStarEmpty, 5-full))
}

// Icons
var (
	IconCatalog   = "💻"
	IconCart      = "🛒"
	IconCompare   = "⚖"
	IconNews      = "📰"
	IconAdmin     = "🛠"
	IconError     = "❌"
	IconSuccess   = "✅"
	IconDotEmpty  = "○"
	IconStar      = "★"
	IconStarEmpty = "☆"
)
