package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lazyvibe/storefront/internal/app"
	"github.com/lazyvibe/storefront/internal/catalog"
	"github.com/lazyvibe/storefront/internal/collection"
	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/notify"
	"github.com/lazyvibe/storefront/internal/ui/components/adminpanel"
	"github.com/lazyvibe/storefront/internal/ui/components/cartview"
	"github.com/lazyvibe/storefront/internal/ui/components/comparetable"
	"github.com/lazyvibe/storefront/internal/ui/components/dialog"
	"github.com/lazyvibe/storefront/internal/ui/components/newslist"
	"github.com/lazyvibe/storefront/internal/ui/components/productlist"
	"github.com/lazyvibe/storefront/internal/ui/components/statusbar"
	"github.com/lazyvibe/storefront/internal/ui/components/tabs"
	"github.com/lazyvibe/storefront/internal/ui/keys"
	"github.com/lazyvibe/storefront/internal/ui/styles"
	"github.com/lazyvibe/storefront/pkg/utils"
)

// Tab identifiers.
const (
	TabCatalog = "catalog"
	TabCart    = "cart"
	TabCompare = "compare"
	TabNews    = "news"
	TabAdmin   = "admin"
)

const (
	minAppWidth  = 40
	minAppHeight = 10
	newsLimit    = 10
	maxQuantity  = 99
)

// DialogMode represents the current dialog being shown.
type DialogMode int

const (
	DialogNone DialogMode = iota
	DialogQuantity
	DialogSearch
	DialogLogin
	DialogRegister
	DialogFilter
	DialogReview
	DialogAdminForm
	DialogAdminDelete
)

// App is the main application model.
type App struct {
	// Components
	tabs           tabs.Model
	productList    productlist.Model
	cartView       cartview.Model
	compareTable   comparetable.Model
	newsList       newslist.Model
	adminPanel     adminpanel.Model
	statusBar      statusbar.Model
	help           help.Model
	quantityDialog dialog.InputDialog
	searchDialog   dialog.InputDialog
	loginDialog    dialog.InputDialog
	registerDialog dialog.InputDialog
	filterDialog   dialog.InputDialog
	reviewDialog   dialog.InputDialog
	adminDialog    dialog.InputDialog

	// State
	dialogMode DialogMode
	width      int
	height     int
	ready      bool
	quitting   bool
	showHelp   bool
	page       int
	query      string
	filter     catalog.ProductFilter
	taxonomy   TaxonomyLoadedMsg
	pending    *model.Product
	adminRow   *adminpanel.Row
	admin      []adminSection
	user       *model.User
	versions   map[model.Kind]uint64

	configDir string
	config    *app.Config

	// Dependencies
	store       *collection.Store
	client      *catalog.Client
	notifier    *notifier
	feed        *changeFeed
	unsubscribe func()
	keys        keys.KeyMap
	ctx         context.Context
	logger      *zap.Logger
}

// Option configures an App.
type Option func(*App)

// WithNotifier enables notifications through d.
func WithNotifier(d *notify.Dispatcher) Option {
	return func(a *App) {
		a.notifier = newNotifier(d, a.config.Notification)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates a new application instance. The app subscribes to s until
// Close is called.
func New(s *collection.Store, client *catalog.Client, cfg *app.Config, configDir string, opts ...Option) App {
	if cfg == nil {
		cfg = app.DefaultConfig()
	}
	a := App{
		tabs: tabs.New(
			tabs.Tab{ID: TabCatalog, Name: "Catalog", Icon: styles.IconCatalog},
			tabs.Tab{ID: TabCart, Name: "Cart", Icon: styles.IconCart},
			tabs.Tab{ID: TabCompare, Name: "Compare", Icon: styles.IconCompare},
			tabs.Tab{ID: TabNews, Name: "News", Icon: styles.IconNews},
			tabs.Tab{ID: TabAdmin, Name: "Admin", Icon: styles.IconAdmin, Hidden: true},
		),
		productList:  productlist.New(cfg.Currency),
		cartView:     cartview.New(cfg.Currency),
		compareTable: comparetable.New(cfg.Currency),
		newsList:     newslist.New(),
		statusBar:    statusbar.New(),
		help:         help.New(),
		loginDialog: dialog.NewInputDialog("Login", []dialog.InputField{
			{Label: "Email", Placeholder: "you@example.kz"},
			{Label: "Password", Password: true},
		}),
		registerDialog: dialog.NewInputDialog("Create account", []dialog.InputField{
			{Label: "Email", Placeholder: "you@example.kz", Validate: required("email")},
			{Label: "Password", Password: true, Validate: required("password")},
			{Label: "Confirm password", Password: true},
		}),
		dialogMode: DialogNone,
		admin:      adminSections(),
		versions:   make(map[model.Kind]uint64),
		configDir:  configDir,
		config:     cfg,
		store:      s,
		client:     client,
		feed:       newChangeFeed(),
		keys:       keys.DefaultKeyMap(),
		ctx:        context.Background(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&a)
	}
	names := make([]string, len(a.admin))
	for i, sec := range a.admin {
		names[i] = sec.Name()
	}
	a.adminPanel = adminpanel.New(names...)
	a.unsubscribe = s.Subscribe(a.feed.push)
	a.productList.SetLoading(true)
	a.newsList.SetLoading(true)
	a.refreshCollections()
	a.updateFocusStyles()
	return a
}

// Close releases the store subscription.
func (a App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Init initializes the application.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.loadProducts(),
		a.loadNews(),
		a.loadTaxonomy(),
		a.restoreSession(),
		waitForChange(a.feed),
	)
}

// loadProducts returns a command to load the current catalog page, or every
// product passing the filter when one is set.
func (a App) loadProducts() tea.Cmd {
	client, ctx := a.client, a.ctx
	page, query, filter, size := a.page, a.query, a.filter, a.config.PageSize
	if !filter.IsZero() {
		return func() tea.Msg {
			f := filter
			f.Search = query
			products, err := client.FilterProducts(ctx, f)
			return ProductsLoadedMsg{Page: page, Query: query, Filter: filter, Products: products, Err: err}
		}
	}
	return func() tea.Msg {
		products, err := client.Products(ctx, catalog.ProductQuery{
			Limit:  size,
			Skip:   page * size,
			Search: query,
		})
		return ProductsLoadedMsg{Page: page, Query: query, Products: products, Err: err}
	}
}

// loadTaxonomy returns a command to load the names offered by the filter
// dialog. A failed lookup leaves its list empty.
func (a App) loadTaxonomy() tea.Cmd {
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		var msg TaxonomyLoadedMsg
		brands, err := client.Brands(ctx)
		for _, b := range brands {
			msg.Brands = append(msg.Brands, b.BrandName)
		}
		types, typesErr := client.Types(ctx)
		for _, t := range types {
			msg.Types = append(msg.Types, t.TypeName)
		}
		categories, catErr := client.Categories(ctx)
		for _, c := range categories {
			msg.Categories = append(msg.Categories, c.CategoryName)
		}
		msg.Err = errors.Join(err, typesErr, catErr)
		return msg
	}
}

// loadPost returns a command to load the full content of post id.
func (a App) loadPost(id string) tea.Cmd {
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		post, err := client.BlogPost(ctx, id)
		return BlogPostLoadedMsg{Post: post, Err: err}
	}
}

// loadNews returns a command to load the latest blog posts.
func (a App) loadNews() tea.Cmd {
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		posts, err := client.BlogPosts(ctx, newsLimit)
		return BlogPostsLoadedMsg{Posts: posts, Err: err}
	}
}

// loadReviews returns a command to load the reviews of p.
func (a App) loadReviews(p model.Product) tea.Cmd {
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		reviews, err := client.ReviewsByProduct(ctx, p.ID)
		return ReviewsLoadedMsg{ProductID: p.ID, ProductName: p.ModelName, Reviews: reviews, Err: err}
	}
}

// loadMyReviews returns a command to load the reviews written by the
// signed-in user.
func (a App) loadMyReviews() tea.Cmd {
	client, ctx, id := a.client, a.ctx, a.user.ID
	return func() tea.Msg {
		reviews, err := client.ReviewsByCustomer(ctx, id)
		return ReviewsLoadedMsg{ProductName: "your reviews", Reviews: reviews, Err: err}
	}
}

// postReview returns a command storing a review of the product shown in
// the news tab.
func (a App) postReview(productID, productName string, rating int, content string) tea.Cmd {
	client, ctx := a.client, a.ctx
	r := model.Review{
		ProductID: productID,
		Rating:    float64(rating),
		Content:   content,
	}
	if a.user != nil {
		r.CustomerID = a.user.ID
	}
	return func() tea.Msg {
		if _, err := client.CreateReview(ctx, r); err != nil {
			return ErrorMsg{Err: fmt.Errorf("review: %w", err)}
		}
		return ReviewPostedMsg{ProductID: productID, ProductName: productName}
	}
}

// restoreSession checks whether a saved cookie still holds a valid session.
func (a App) restoreSession() tea.Cmd {
	client, ctx, logger := a.client, a.ctx, a.logger
	return func() tea.Msg {
		user, err := client.VerifyAuth(ctx)
		if err != nil {
			logger.Debug("no saved session", zap.Error(err))
			return nil
		}
		return LoggedInMsg{User: user, Silent: true}
	}
}

func (a App) login(email, password string) tea.Cmd {
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		user, err := client.Login(ctx, email, password)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("login: %w", err)}
		}
		return LoggedInMsg{User: user}
	}
}

func (a App) register(email, password, confirm string) tea.Cmd {
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		if err := client.Register(ctx, email, password, confirm); err != nil {
			return ErrorMsg{Err: fmt.Errorf("sign up: %w", err)}
		}
		return RegisteredMsg{Email: email}
	}
}

func (a App) logout() tea.Cmd {
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		if err := client.Logout(ctx); err != nil {
			return ErrorMsg{Err: fmt.Errorf("logout: %w", err)}
		}
		return LoggedOutMsg{}
	}
}

// checkout returns a command creating a checkout session for the cart.
func (a App) checkout() tea.Cmd {
	items := a.store.List(model.KindCart)
	client, ctx := a.client, a.ctx
	return func() tea.Msg {
		url, err := client.CreateCheckoutSession(ctx, catalog.PaymentItemsFromCart(items))
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("checkout: %w", err)}
		}
		return CheckoutReadyMsg{URL: url, Count: len(items)}
	}
}

// loadAdminSection returns a command listing admin section i.
func (a App) loadAdminSection(i int) tea.Cmd {
	if i < 0 || i >= len(a.admin) {
		return nil
	}
	sec, admin, ctx := a.admin[i], a.client.Admin(), a.ctx
	return func() tea.Msg {
		rows, err := sec.List(ctx, admin)
		return AdminRowsLoadedMsg{Section: i, Rows: rows, Err: err}
	}
}

// saveAdmin returns a command creating or updating an entity of section i.
func (a App) saveAdmin(i int, row *adminpanel.Row, values []string) tea.Cmd {
	sec, admin, ctx := a.admin[i], a.client.Admin(), a.ctx
	return func() tea.Msg {
		if err := sec.Save(ctx, admin, row, values); err != nil {
			return ErrorMsg{Err: fmt.Errorf("%s: %w", strings.ToLower(sec.Name()), err)}
		}
		verb := "created"
		if row != nil {
			verb = "updated"
		}
		return AdminSavedMsg{Section: i, Message: fmt.Sprintf("%s: entry %s", sec.Name(), verb)}
	}
}

// deleteAdmin returns a command deleting entity id of section i.
func (a App) deleteAdmin(i int, id string) tea.Cmd {
	sec, admin, ctx := a.admin[i], a.client.Admin(), a.ctx
	return func() tea.Msg {
		if err := sec.Delete(ctx, admin, id); err != nil {
			return ErrorMsg{Err: fmt.Errorf("%s: %w", strings.ToLower(sec.Name()), err)}
		}
		return AdminSavedMsg{Section: i, Message: fmt.Sprintf("%s: %s deleted", sec.Name(), id)}
	}
}

// SetSize updates the window dimensions.
func (a *App) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.statusBar.SetWidth(width)
	a.tabs.SetWidth(width)
	a.help.Width = width
	a.quantityDialog.SetSize(width, height)
	a.searchDialog.SetSize(width, height)
	a.loginDialog.SetSize(width, height)
	a.registerDialog.SetSize(width, height)
	a.filterDialog.SetSize(width, height)
	a.reviewDialog.SetSize(width, height)
	a.adminDialog.SetSize(width, height)

	if a.windowTooSmall() {
		return
	}

	contentHeight := a.contentHeight()
	a.productList.SetSize(width, contentHeight)
	a.cartView.SetSize(width, contentHeight)
	a.compareTable.SetSize(width, contentHeight)
	a.newsList.SetSize(width, contentHeight)
	a.adminPanel.SetSize(width, contentHeight)
}

// contentHeight is the space left for the active tab below the tab bar and
// above the status bar.
func (a App) contentHeight() int {
	h := a.height - 3 - 1
	if h < 3 {
		h = 3
	}
	return h
}

func (a App) windowTooSmall() bool {
	return a.width < minAppWidth || a.height < minAppHeight
}

// updateFocusStyles focuses the component of the active tab.
func (a *App) updateFocusStyles() {
	active := a.tabs.ActiveID()
	a.productList.SetFocused(active == TabCatalog)
	a.cartView.SetFocused(active == TabCart)
	a.compareTable.SetFocused(active == TabCompare)
	a.newsList.SetFocused(active == TabNews)
	a.adminPanel.SetFocused(active == TabAdmin)
}

// refreshCollections reads both collections from the store.
func (a *App) refreshCollections() {
	cart := a.store.List(model.KindCart)
	a.applyChange(collection.Change{
		Kind:  model.KindCart,
		Items: cart,
		Count: a.store.Count(model.KindCart),
		Total: a.store.Total(model.KindCart),
	})
	compare := a.store.List(model.KindComparison)
	a.applyChange(collection.Change{
		Kind:  model.KindComparison,
		Items: compare,
		Count: a.store.Count(model.KindComparison),
	})
}

// applyChange renders a collection snapshot into the components.
func (a *App) applyChange(c collection.Change) {
	switch c.Kind {
	case model.KindCart:
		a.cartView.SetItems(c.Items, c.Count, c.Total)
		a.tabs.SetCount(TabCart, c.Count)
	case model.KindComparison:
		a.compareTable.SetItems(c.Items)
		a.tabs.SetCount(TabCompare, c.Count)
	default:
		return
	}
	a.productList.SetMembership(a.inCart, a.inCompare)
	a.statusBar.SetCounts(
		a.store.Count(model.KindCart),
		a.store.Count(model.KindComparison),
		utils.FormatPrice(a.store.Total(model.KindCart), a.config.Currency),
	)
	if c.Err != nil {
		a.statusBar.SetMessage(fmt.Sprintf("%s changed but could not be saved: %v", kindLabel(c.Kind), c.Err), true)
	}
}

func (a App) inCart(id string) bool {
	return a.store.Has(model.KindCart, id)
}

func (a App) inCompare(id string) bool {
	return a.store.Has(model.KindComparison, id)
}

// openQuantityDialog asks how many units of p to put in the cart.
func (a *App) openQuantityDialog(p model.Product) {
	qty := 1
	for _, it := range a.store.List(model.KindCart) {
		if it.ID == p.ID {
			qty = it.Quantity
		}
	}
	a.pending = &p
	a.quantityDialog = dialog.NewInputDialog("Add "+p.ModelName+" to cart", []dialog.InputField{{
		Label:     "Quantity",
		Value:     strconv.Itoa(qty),
		CharLimit: 2,
		Validate:  validateQuantity,
	}})
	a.quantityDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogQuantity
}

func (a *App) openSearchDialog() {
	a.searchDialog = dialog.NewInputDialog("Search catalog", []dialog.InputField{{
		Label:       "Query",
		Placeholder: "model, brand or processor",
		Value:       a.query,
		Options:     a.config.GetRecentSearches(""),
	}})
	a.searchDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogSearch
}

func (a *App) openLoginDialog() {
	a.loginDialog.Reset()
	a.loginDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogLogin
}

func (a *App) openRegisterDialog() {
	a.registerDialog.Reset()
	a.registerDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogRegister
}

// openFilterDialog offers the loaded taxonomy names as completions.
func (a *App) openFilterDialog() {
	a.filterDialog = dialog.NewInputDialog("Filter catalog", []dialog.InputField{
		{Label: "Brand", Placeholder: "any", Value: a.filter.Brand, Options: a.taxonomy.Brands},
		{Label: "Type", Placeholder: "any", Value: a.filter.Type, Options: a.taxonomy.Types},
		{Label: "Category", Placeholder: "any", Value: a.filter.Category, Options: a.taxonomy.Categories},
	})
	a.filterDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogFilter
}

func (a *App) openReviewDialog(productName string) {
	a.reviewDialog = dialog.NewInputDialog("Review "+productName, []dialog.InputField{
		{Label: "Rating", Placeholder: "1-5", Value: "5", CharLimit: 1, Validate: validateRating},
		{Label: "Review", CharLimit: 2000, Validate: required("review")},
	})
	a.reviewDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogReview
}

// openAdminForm edits row of the active admin section, or creates a new
// entity when row is nil.
func (a *App) openAdminForm(row *adminpanel.Row) {
	sec := a.admin[a.adminPanel.Section()]
	title := "New " + strings.ToLower(sec.Name())
	if row != nil {
		title = "Edit " + row.ID
	}
	a.adminRow = row
	a.adminDialog = dialog.NewInputDialog(title, sec.Form(row))
	a.adminDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogAdminForm
}

func (a *App) openAdminDelete(row adminpanel.Row) {
	a.adminRow = &row
	a.adminDialog = dialog.NewInputDialog("Delete "+row.Title, []dialog.InputField{{
		Label:       "Type yes to delete " + row.ID,
		Placeholder: "yes",
		CharLimit:   3,
		Validate: func(v string) error {
			if !strings.EqualFold(strings.TrimSpace(v), "yes") {
				return errors.New("type yes to confirm")
			}
			return nil
		},
	}})
	a.adminDialog.SetSize(a.width, a.height)
	a.dialogMode = DialogAdminDelete
}

// filterLabel describes the active filter in the catalog header.
func (a App) filterLabel() string {
	var parts []string
	if a.filter.Brand != "" {
		parts = append(parts, "brand "+a.filter.Brand)
	}
	if a.filter.Type != "" {
		parts = append(parts, "type "+a.filter.Type)
	}
	if a.filter.Category != "" {
		parts = append(parts, "category "+a.filter.Category)
	}
	return strings.Join(parts, ", ")
}

func validateQuantity(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > maxQuantity {
		return fmt.Errorf("quantity must be between 1 and %d", maxQuantity)
	}
	return nil
}

// addToCart stores qty units of p in the cart.
func (a *App) addToCart(p model.Product, qty int) tea.Cmd {
	changed, err := a.store.Add(model.KindCart, model.ItemFromProduct(p, qty))
	return a.reportAdd(model.KindCart, p.ID, p.ModelName, changed, err)
}

// addToComparison stores p in the comparison list.
func (a *App) addToComparison(p model.Product) tea.Cmd {
	changed, err := a.store.Add(model.KindComparison, model.ItemFromProduct(p, 1))
	return a.reportAdd(model.KindComparison, p.ID, p.ModelName, changed, err)
}

// reportAdd turns the result of an add into a status message and a
// notification.
func (a *App) reportAdd(kind model.Kind, id, name string, changed bool, err error) tea.Cmd {
	var persistErr *collection.PersistenceError
	switch {
	case err != nil && !errors.As(err, &persistErr):
		a.statusBar.SetMessage(err.Error(), true)
		return a.notifier.send(notify.Event{Kind: kind, ItemID: id, ItemName: name, Type: notify.EventError, Message: err.Error()})
	case !changed:
		msg := fmt.Sprintf("%s is already in %s", name, kindLabel(kind))
		a.statusBar.SetMessage(msg, false)
		return a.notifier.send(notify.Event{Kind: kind, ItemID: id, ItemName: name, Type: notify.EventItemAlreadyPresent, Message: msg})
	default:
		// A persistence failure is reported by the change notification.
		msg := fmt.Sprintf("%s added to %s", name, kindLabel(kind))
		if persistErr == nil {
			a.statusBar.SetMessage(msg, false)
		}
		return a.notifier.send(notify.Event{Kind: kind, ItemID: id, ItemName: name, Type: notify.EventItemAdded, Message: msg})
	}
}

// reportMutation shows the outcome of a quantity change, removal or clear.
func (a *App) reportMutation(kind model.Kind, verb string, err error) {
	var persistErr *collection.PersistenceError
	switch {
	case err == nil:
		a.statusBar.SetMessage(fmt.Sprintf("%s %s", kindLabel(kind), verb), false)
	case errors.As(err, &persistErr):
		// Reported by the change notification.
	default:
		a.statusBar.SetMessage(err.Error(), true)
	}
}

// kindLabel names a collection in messages.
func kindLabel(kind model.Kind) string {
	switch kind {
	case model.KindCart:
		return "cart"
	case model.KindComparison:
		return "comparison"
	}
	return kind.String()
}
