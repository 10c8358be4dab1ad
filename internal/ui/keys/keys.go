// Package keys defines keyboard shortcuts for the storefront TUI.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	NextPage key.Binding
	PrevPage key.Binding

	// Catalog
	AddToCart  key.Binding
	Compare    key.Binding
	Reload     key.Binding
	Search     key.Binding
	Filter     key.Binding
	OpenDetail key.Binding
	Review     key.Binding
	MyReviews  key.Binding

	// Collections
	Increase key.Binding
	Decrease key.Binding
	Remove   key.Binding
	Clear    key.Binding
	Checkout key.Binding

	// Admin
	New  key.Binding
	Edit key.Binding

	// Session
	Login    key.Binding
	Register key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keyboard shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "prev page"),
		),
		AddToCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add to cart"),
		),
		Compare: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "compare"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		OpenDetail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Review: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write review"),
		),
		MyReviews: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "my reviews"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "checkout"),
		),
		New: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "login"),
		),
		Register: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "sign up"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help text for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Tab,
		k.AddToCart,
		k.Compare,
		k.Remove,
		k.Checkout,
		k.Login,
		k.Quit,
	}
}

// FullHelp returns complete help text.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.ShiftTab, k.NextPage, k.PrevPage},
		{k.AddToCart, k.Compare, k.Reload, k.Search, k.Filter, k.OpenDetail, k.Review, k.MyReviews},
		{k.Increase, k.Decrease, k.Remove, k.Clear, k.Checkout},
		{k.New, k.Edit},
		{k.Login, k.Register, k.Help, k.Quit},
	}
}
