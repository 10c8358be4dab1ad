// Package ui provides the terminal user interface for the storefront.
package ui

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazyvibe/storefront/internal/catalog"
	"github.com/lazyvibe/storefront/internal/collection"
	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/ui/components/adminpanel"
)

// ---------- Catalog Messages ----------

// ProductsLoadedMsg is sent when a catalog page is loaded.
type ProductsLoadedMsg struct {
	Page     int
	Query    string
	Filter   catalog.ProductFilter
	Products []model.Product
	Err      error
}

// TaxonomyLoadedMsg carries the brand, type and category names offered by
// the filter dialog.
type TaxonomyLoadedMsg struct {
	Brands     []string
	Types      []string
	Categories []string
	Err        error
}

// BlogPostsLoadedMsg is sent when news posts are loaded.
type BlogPostsLoadedMsg struct {
	Posts []model.BlogPost
	Err   error
}

// BlogPostLoadedMsg is sent when a single post is loaded in full.
type BlogPostLoadedMsg struct {
	Post *model.BlogPost
	Err  error
}

// ReviewsLoadedMsg is sent when the reviews of a product are loaded.
type ReviewsLoadedMsg struct {
	ProductID   string
	ProductName string
	Reviews     []model.Review
	Err         error
}

// ReviewPostedMsg is sent when a review was stored.
type ReviewPostedMsg struct {
	ProductID   string
	ProductName string
}

// ---------- Admin Messages ----------

// AdminRowsLoadedMsg carries the list of one admin section.
type AdminRowsLoadedMsg struct {
	Section int
	Rows    []adminpanel.Row
	Err     error
}

// AdminSavedMsg is sent after a create, update or delete in the admin tab.
type AdminSavedMsg struct {
	Section int
	Message string
}

// ---------- Collection Messages ----------

// CollectionChangedMsg carries the latest change of every collection that
// changed since the previous message, oldest first.
type CollectionChangedMsg struct {
	Changes []collection.Change
}

// CheckoutReadyMsg is sent when a checkout session was created.
type CheckoutReadyMsg struct {
	URL   string
	Count int
}

// ---------- Session Messages ----------

// LoggedInMsg is sent when a user session is established.
type LoggedInMsg struct {
	User *model.User
	// Silent suppresses the status message for restored sessions.
	Silent bool
}

// LoggedOutMsg is sent after logout.
type LoggedOutMsg struct{}

// RegisteredMsg is sent when an account was created.
type RegisteredMsg struct {
	Email string
}

// ---------- UI Messages ----------

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Err error
}

// changeFeed coalesces store changes into the latest one per kind so a slow
// UI never blocks a mutation.
type changeFeed struct {
	mu      sync.Mutex
	pending map[model.Kind]collection.Change
	signal  chan struct{}
}

func newChangeFeed() *changeFeed {
	return &changeFeed{
		pending: make(map[model.Kind]collection.Change),
		signal:  make(chan struct{}, 1),
	}
}

// push is a collection.Listener.
func (f *changeFeed) push(c collection.Change) {
	f.mu.Lock()
	if prev, ok := f.pending[c.Kind]; !ok || c.Version > prev.Version {
		f.pending[c.Kind] = c
	}
	f.mu.Unlock()

	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *changeFeed) drain() []collection.Change {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]collection.Change, 0, len(f.pending))
	for kind, c := range f.pending {
		out = append(out, c)
		delete(f.pending, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// waitForChange returns a command that waits for the next collection change.
// Changes that arrive while the UI is busy are batched into one message.
func waitForChange(f *changeFeed) tea.Cmd {
	return func() tea.Msg {
		for range f.signal {
			if changes := f.drain(); len(changes) > 0 {
				return CollectionChangedMsg{Changes: changes}
			}
		}
		return nil
	}
}
