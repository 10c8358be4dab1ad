package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lazyvibe/storefront/internal/app"
	"github.com/lazyvibe/storefront/internal/catalog"
	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/notify"
)

// Update handles all messages for the application.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If a dialog is open, only intercept key input; allow other messages through.
	if a.dialogMode != DialogNone {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return a.handleDialogUpdate(keyMsg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeys(msg)

	case ProductsLoadedMsg:
		if msg.Page != a.page || msg.Query != a.query || msg.Filter != a.filter {
			return a, nil
		}
		a.productList.SetLoading(false)
		if msg.Err != nil {
			a.statusBar.SetMessage("Error loading products: "+msg.Err.Error(), true)
			return a, nil
		}
		a.productList.SetPage(a.page, a.query)
		a.productList.SetFilter(a.filterLabel())
		a.productList.SetProducts(msg.Products, a.inCart, a.inCompare)
		return a, nil

	case TaxonomyLoadedMsg:
		if msg.Err != nil {
			a.logger.Warn("load filter options", zap.Error(msg.Err))
		}
		a.taxonomy = msg
		return a, nil

	case BlogPostLoadedMsg:
		if msg.Err != nil {
			a.statusBar.SetMessage("Error loading post: "+msg.Err.Error(), true)
			return a, nil
		}
		a.newsList.ShowPost(*msg.Post)
		return a, nil

	case BlogPostsLoadedMsg:
		a.newsList.SetLoading(false)
		if msg.Err != nil {
			a.statusBar.SetMessage("Error loading news: "+msg.Err.Error(), true)
			return a, nil
		}
		a.newsList.SetPosts(msg.Posts)
		return a, nil

	case ReviewsLoadedMsg:
		if msg.Err != nil {
			a.statusBar.SetMessage("Error loading reviews: "+msg.Err.Error(), true)
			return a, nil
		}
		a.newsList.SetReviews(msg.ProductID, msg.ProductName, msg.Reviews)
		a.tabs.SetActiveTab(TabNews)
		a.updateFocusStyles()
		return a, nil

	case ReviewPostedMsg:
		a.statusBar.SetMessage("Review posted for "+msg.ProductName, false)
		return a, a.loadReviews(model.Product{ID: msg.ProductID, ModelName: msg.ProductName})

	case AdminRowsLoadedMsg:
		a.adminPanel.SetRows(msg.Section, msg.Rows, msg.Err)
		return a, nil

	case AdminSavedMsg:
		a.statusBar.SetMessage(msg.Message, false)
		if msg.Section != a.adminPanel.Section() {
			return a, nil
		}
		a.adminPanel.SetLoading(true)
		return a, a.loadAdminSection(msg.Section)

	case CollectionChangedMsg:
		for _, c := range msg.Changes {
			if c.Version <= a.versions[c.Kind] {
				continue
			}
			a.versions[c.Kind] = c.Version
			a.applyChange(c)
		}
		return a, waitForChange(a.feed)

	case CheckoutReadyMsg:
		a.cartView.SetCheckoutURL(msg.URL)
		a.statusBar.SetMessage("Checkout ready, open the link below the cart", false)
		return a, a.notifier.send(notify.Event{
			Kind:    model.KindCart,
			Type:    notify.EventCheckoutReady,
			Title:   "Checkout ready",
			Message: fmt.Sprintf("%d item(s) ready for payment: %s", msg.Count, msg.URL),
		})

	case LoggedInMsg:
		a.user = msg.User
		a.statusBar.SetUser(msg.User.DisplayName())
		if !msg.Silent {
			a.statusBar.SetMessage("Signed in as "+msg.User.DisplayName(), false)
		}
		a.tabs.SetHidden(TabAdmin, !msg.User.IsAdmin())
		a.updateFocusStyles()
		if !msg.User.IsAdmin() {
			return a, nil
		}
		a.adminPanel.SetLoading(true)
		return a, a.loadAdminSection(a.adminPanel.Section())

	case LoggedOutMsg:
		a.user = nil
		a.tabs.SetHidden(TabAdmin, true)
		a.updateFocusStyles()
		a.statusBar.SetUser("")
		a.statusBar.SetMessage("Signed out", false)
		return a, nil

	case RegisteredMsg:
		a.statusBar.SetMessage("Account created for "+msg.Email+", press L to sign in", false)
		return a, nil

	case ErrorMsg:
		a.logger.Warn("ui error", zap.Error(msg.Err))
		a.statusBar.SetMessage(errorText(msg.Err), true)
		return a, a.notifier.send(notify.Event{Type: notify.EventError, Message: msg.Err.Error()})
	}

	return a, nil
}

// handleKeys handles keys outside dialogs.
func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		a.Close()
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil
	case key.Matches(msg, a.keys.Tab):
		a.tabs.NextTab()
		a.updateFocusStyles()
		return a, nil
	case key.Matches(msg, a.keys.ShiftTab):
		a.tabs.PrevTab()
		a.updateFocusStyles()
		return a, nil
	case key.Matches(msg, a.keys.Login):
		if a.user != nil {
			return a, a.logout()
		}
		a.openLoginDialog()
		return a, nil
	case key.Matches(msg, a.keys.Register):
		if a.user != nil {
			a.statusBar.SetMessage("Already signed in as "+a.user.DisplayName(), false)
			return a, nil
		}
		a.openRegisterDialog()
		return a, nil
	}

	switch a.tabs.ActiveID() {
	case TabCatalog:
		return a.handleCatalogKeys(msg)
	case TabCart:
		return a.handleCartKeys(msg)
	case TabCompare:
		return a.handleCompareKeys(msg)
	case TabNews:
		return a.handleNewsKeys(msg)
	case TabAdmin:
		return a.handleAdminKeys(msg)
	}
	return a, nil
}

func (a App) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := a.productList.SelectedProduct()

	switch {
	case key.Matches(msg, a.keys.AddToCart):
		if selected != nil {
			a.openQuantityDialog(*selected)
		}
		return a, nil
	case key.Matches(msg, a.keys.Compare):
		if selected != nil {
			return a, a.addToComparison(*selected)
		}
		return a, nil
	case key.Matches(msg, a.keys.Reload):
		a.productList.SetLoading(true)
		return a, a.loadProducts()
	case key.Matches(msg, a.keys.Search):
		a.openSearchDialog()
		return a, nil
	case key.Matches(msg, a.keys.Filter):
		a.openFilterDialog()
		return a, nil
	case key.Matches(msg, a.keys.OpenDetail):
		if selected != nil {
			a.statusBar.SetMessage("Loading reviews for "+selected.ModelName, false)
			return a, a.loadReviews(*selected)
		}
		return a, nil
	case key.Matches(msg, a.keys.NextPage):
		if !a.filter.IsZero() || a.productList.ItemCount() < a.config.PageSize {
			return a, nil
		}
		a.page++
		a.productList.SetLoading(true)
		return a, a.loadProducts()
	case key.Matches(msg, a.keys.PrevPage):
		if a.page == 0 {
			return a, nil
		}
		a.page--
		a.productList.SetLoading(true)
		return a, a.loadProducts()
	}

	var cmd tea.Cmd
	a.productList, cmd = a.productList.Update(msg)
	return a, cmd
}

func (a App) handleCartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := a.cartView.Selected()

	switch {
	case key.Matches(msg, a.keys.Increase):
		if selected != nil && selected.Quantity < maxQuantity {
			_, err := a.store.UpdateQuantity(model.KindCart, selected.ID, selected.Quantity+1)
			a.reportMutation(model.KindCart, "updated", err)
		}
		return a, nil
	case key.Matches(msg, a.keys.Decrease):
		if selected != nil {
			_, err := a.store.UpdateQuantity(model.KindCart, selected.ID, selected.Quantity-1)
			a.reportMutation(model.KindCart, "updated", err)
		}
		return a, nil
	case key.Matches(msg, a.keys.Remove):
		if selected != nil {
			_, err := a.store.Remove(model.KindCart, selected.ID)
			a.reportMutation(model.KindCart, "item removed", err)
		}
		return a, nil
	case key.Matches(msg, a.keys.Clear):
		err := a.store.Clear(model.KindCart)
		a.cartView.SetCheckoutURL("")
		a.reportMutation(model.KindCart, "cleared", err)
		return a, nil
	case key.Matches(msg, a.keys.Checkout):
		if a.store.Count(model.KindCart) == 0 {
			a.statusBar.SetMessage(catalog.ErrEmptyCheckout.Error(), true)
			return a, nil
		}
		a.statusBar.SetMessage("Creating checkout session...", false)
		return a, a.checkout()
	}

	a.cartView.HandleKey(msg.String())
	return a, nil
}

func (a App) handleCompareKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := a.compareTable.Selected()

	switch {
	case key.Matches(msg, a.keys.Remove):
		if selected != nil {
			_, err := a.store.Remove(model.KindComparison, selected.ID)
			a.reportMutation(model.KindComparison, "item removed", err)
		}
		return a, nil
	case key.Matches(msg, a.keys.Clear):
		err := a.store.Clear(model.KindComparison)
		a.reportMutation(model.KindComparison, "cleared", err)
		return a, nil
	case key.Matches(msg, a.keys.AddToCart):
		if selected != nil {
			item := selected.Clone()
			item.Quantity = 1
			changed, err := a.store.Add(model.KindCart, item)
			return a, a.reportAdd(model.KindCart, item.ID, item.Name, changed, err)
		}
		return a, nil
	}

	a.compareTable.HandleKey(msg.String())
	return a, nil
}

func (a App) handleNewsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Reload):
		a.newsList.SetLoading(true)
		return a, a.loadNews()
	case key.Matches(msg, a.keys.OpenDetail):
		if sel := a.newsList.Selected(); sel != nil {
			return a, a.loadPost(sel.ID)
		}
		return a, nil
	case key.Matches(msg, a.keys.Review):
		_, name, ok := a.newsList.ReviewTarget()
		switch {
		case !ok:
			a.statusBar.SetMessage("Open a product's reviews from the catalog first", true)
		case a.user == nil:
			a.statusBar.SetMessage("Sign in with L to write a review", true)
		default:
			a.openReviewDialog(name)
		}
		return a, nil
	case key.Matches(msg, a.keys.MyReviews):
		if a.user == nil {
			a.statusBar.SetMessage("Sign in with L to see your reviews", true)
			return a, nil
		}
		return a, a.loadMyReviews()
	}
	a.newsList.HandleKey(msg.String())
	return a, nil
}

func (a App) handleAdminKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := a.adminPanel.Selected()

	switch {
	case key.Matches(msg, a.keys.NextPage):
		a.adminPanel.NextSection()
		a.adminPanel.SetLoading(true)
		return a, a.loadAdminSection(a.adminPanel.Section())
	case key.Matches(msg, a.keys.PrevPage):
		a.adminPanel.PrevSection()
		a.adminPanel.SetLoading(true)
		return a, a.loadAdminSection(a.adminPanel.Section())
	case key.Matches(msg, a.keys.Reload):
		a.adminPanel.SetLoading(true)
		return a, a.loadAdminSection(a.adminPanel.Section())
	case key.Matches(msg, a.keys.New):
		a.openAdminForm(nil)
		return a, nil
	case key.Matches(msg, a.keys.Edit):
		if selected != nil {
			a.openAdminForm(selected)
		}
		return a, nil
	case key.Matches(msg, a.keys.Remove):
		if selected != nil {
			a.openAdminDelete(*selected)
		}
		return a, nil
	}

	a.adminPanel.HandleKey(msg.String())
	return a, nil
}

// handleDialogUpdate routes keys to the open dialog.
func (a App) handleDialogUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.dialogMode {
	case DialogQuantity:
		a.quantityDialog, cmd = a.quantityDialog.Update(msg)
		if a.quantityDialog.IsCancelled() {
			a.closeDialog()
			return a, nil
		}
		if a.quantityDialog.IsSubmitted() {
			qty, _ := strconv.Atoi(strings.TrimSpace(a.quantityDialog.Value(0)))
			p := a.pending
			a.closeDialog()
			if p == nil {
				return a, nil
			}
			return a, a.addToCart(*p, qty)
		}

	case DialogSearch:
		a.searchDialog, cmd = a.searchDialog.Update(msg)
		if a.searchDialog.IsCancelled() {
			a.closeDialog()
			return a, nil
		}
		if a.searchDialog.IsSubmitted() {
			a.query = strings.TrimSpace(a.searchDialog.Value(0))
			a.page = 0
			a.closeDialog()
			if a.query != "" {
				a.config.AddRecentSearch(a.query)
				if err := app.SaveConfig(a.configDir, a.config); err != nil {
					a.logger.Warn("save recent searches", zap.Error(err))
				}
			}
			a.productList.SetLoading(true)
			return a, a.loadProducts()
		}

	case DialogLogin:
		a.loginDialog, cmd = a.loginDialog.Update(msg)
		if a.loginDialog.IsCancelled() {
			a.closeDialog()
			return a, nil
		}
		if a.loginDialog.IsSubmitted() {
			email := strings.TrimSpace(a.loginDialog.Value(0))
			password := a.loginDialog.Value(1)
			a.closeDialog()
			if email == "" || password == "" {
				a.statusBar.SetMessage(catalog.ErrMissingCredentials.Error(), true)
				return a, nil
			}
			a.statusBar.SetMessage("Signing in...", false)
			return a, a.login(email, password)
		}

	case DialogRegister:
		a.registerDialog, cmd = a.registerDialog.Update(msg)
		if a.registerDialog.IsCancelled() {
			a.closeDialog()
			return a, nil
		}
		if a.registerDialog.IsSubmitted() {
			v := a.registerDialog.Values()
			a.closeDialog()
			if v[1] != v[2] {
				a.statusBar.SetMessage(catalog.ErrPasswordMismatch.Error(), true)
				return a, nil
			}
			a.statusBar.SetMessage("Creating account...", false)
			return a, a.register(strings.TrimSpace(v[0]), v[1], v[2])
		}

	case DialogFilter:
		a.filterDialog, cmd = a.filterDialog.Update(msg)
		if a.filterDialog.IsCancelled() {
			a.closeDialog()
			return a, nil
		}
		if a.filterDialog.IsSubmitted() {
			v := a.filterDialog.Values()
			a.filter = catalog.ProductFilter{
				Brand:    strings.TrimSpace(v[0]),
				Type:     strings.TrimSpace(v[1]),
				Category: strings.TrimSpace(v[2]),
			}
			a.page = 0
			a.closeDialog()
			a.productList.SetLoading(true)
			return a, a.loadProducts()
		}

	case DialogReview:
		a.reviewDialog, cmd = a.reviewDialog.Update(msg)
		if a.reviewDialog.IsCancelled() {
			a.closeDialog()
			return a, nil
		}
		if a.reviewDialog.IsSubmitted() {
			rating, _ := strconv.Atoi(strings.TrimSpace(a.reviewDialog.Value(0)))
			content := strings.TrimSpace(a.reviewDialog.Value(1))
			id, name, _ := a.newsList.ReviewTarget()
			a.closeDialog()
			a.statusBar.SetMessage("Posting review...", false)
			return a, a.postReview(id, name, rating, content)
		}

	case DialogAdminForm, DialogAdminDelete:
		a.adminDialog, cmd = a.adminDialog.Update(msg)
		if a.adminDialog.IsCancelled() {
			a.closeDialog()
			return a, nil
		}
		if a.adminDialog.IsSubmitted() {
			mode, row, section := a.dialogMode, a.adminRow, a.adminPanel.Section()
			values := a.adminDialog.Values()
			a.closeDialog()
			if mode == DialogAdminDelete {
				return a, a.deleteAdmin(section, row.ID)
			}
			return a, a.saveAdmin(section, row, values)
		}
	}
	return a, cmd
}

func (a *App) closeDialog() {
	a.dialogMode = DialogNone
	a.pending = nil
	a.adminRow = nil
}

// errorText shortens API errors to the server message.
func errorText(err error) string {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return "Not signed in: " + apiErr.Message
	}
	return err.Error()
}
