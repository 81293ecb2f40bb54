package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mansi-10-4/nova/internal/advisor"
	"github.com/Mansi-10-4/nova/internal/cart"
	"github.com/Mansi-10-4/nova/internal/catalog"
	"github.com/Mansi-10-4/nova/internal/checkout"
	"github.com/Mansi-10-4/nova/internal/orders"
	"github.com/Mansi-10-4/nova/internal/view"
	"github.com/Mansi-10-4/nova/internal/wishlist"
	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/pagination"
)

// Session is one shopper's storefront. Every method is safe for concurrent
// use; mutations apply in arrival order and external calls run unlocked.
type Session struct {
	id   string
	deps *Deps

	mu       sync.Mutex
	catalog  *catalog.Store
	cart     *cart.Cart
	wishlist *wishlist.Wishlist
	history  *orders.History
	pipeline *checkout.Pipeline
	nav      *view.Navigator

	category string
	sort     enums.SortMode

	insights        map[string]string
	recommendations map[string][]catalog.Product
	studio          *StudioImage

	tickets map[string]uint64
	seq     uint64
}

// CartView is the cart as rendered to the shopper.
type CartView struct {
	Items []cart.Item         `json:"items"`
	Total decimal.Decimal     `json:"total"`
	Count int                 `json:"count"`
	State enums.CheckoutState `json:"checkout_state"`
}

// BrowseView is a filtered, sorted catalog page.
type BrowseView struct {
	Products   []catalog.Product `json:"products"`
	Categories []string          `json:"categories"`
	Category   string            `json:"category"`
	Sort       enums.SortMode    `json:"sort"`
}

// ProductView is one product with its wishlist flag.
type ProductView struct {
	catalog.Product
	Wishlisted bool `json:"wishlisted"`
	InCart     int  `json:"in_cart"`
}

// WishlistView lists wishlisted products in the order they were added.
type WishlistView struct {
	IDs      []string          `json:"ids"`
	Products []catalog.Product `json:"products"`
}

// CheckoutView is the pipeline status plus the amount that would be charged.
type CheckoutView struct {
	State       enums.CheckoutState `json:"state"`
	LastOutcome enums.CheckoutState `json:"last_outcome,omitempty"`
	LastFailure string              `json:"last_failure,omitempty"`
	Total       decimal.Decimal     `json:"total"`
	Count       int                 `json:"count"`
	LastOrder   *orders.Order       `json:"last_order,omitempty"`
}

// StudioImage is a generated design concept.
type StudioImage struct {
	Prompt    string          `json:"prompt"`
	Size      enums.ImageSize `json:"size"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"created_at"`
}

func newSession(id string, deps *Deps) *Session {
	products := catalog.NewStore(deps.Products)
	c := cart.New()
	history := orders.NewHistory(deps.Store, id)
	s := &Session{
		id:              id,
		deps:            deps,
		catalog:         products,
		cart:            c,
		wishlist:        wishlist.New(deps.Store, id),
		history:         history,
		nav:             view.NewNavigator(),
		category:        catalog.AllCategories,
		sort:            enums.SortModeDefault,
		insights:        map[string]string{},
		recommendations: map[string][]catalog.Product{},
		tickets:         map[string]uint64{},
	}
	s.pipeline = checkout.NewPipeline(c, products, history, checkout.Options{
		Now:            deps.Now,
		OnPersistError: s.logPersistError,
	})
	s.nav.OnEnter(enums.ViewStorefront, func() { s.category = catalog.AllCategories })
	return s
}

func (s *Session) load(ctx context.Context) error {
	if err := s.wishlist.Load(ctx); err != nil {
		return fmt.Errorf("loading wishlist: %w", err)
	}
	if err := s.history.Load(ctx); err != nil {
		return fmt.Errorf("loading order history: %w", err)
	}
	return nil
}

// ID is the session identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) logPersistError(ctx context.Context, order orders.Order, err error) {
	logg := s.deps.Logger
	logg.Error(logg.WithOrderID(logg.WithSessionID(ctx, s.id), order.ID), "order history not persisted", err)
}

func (s *Session) product(id string) (catalog.Product, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]string{"product_id": id})
	}
	return p, nil
}

// Browse filters and sorts the catalog. Nil arguments keep the session's
// current filter or sort; given ones are remembered.
func (s *Session) Browse(category *string, sort *enums.SortMode) BrowseView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category != nil {
		s.category = *category
		if s.category == "" {
			s.category = catalog.AllCategories
		}
	}
	if sort != nil {
		s.sort = *sort
	}
	all := s.catalog.All()
	return BrowseView{
		Products:   catalog.Browse(all, s.category, s.sort),
		Categories: catalog.Categories(all),
		Category:   s.category,
		Sort:       s.sort,
	}
}

// Product returns one product with its wishlist and cart state.
func (s *Session) Product(id string) (ProductView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.product(id)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{Product: p, Wishlisted: s.wishlist.Contains(id), InCart: s.cart.Quantity(id)}, nil
}

func (s *Session) cartView() CartView {
	return CartView{
		Items: s.cart.Items(),
		Total: s.cart.Total(s.catalog),
		Count: s.cart.Count(),
		State: s.pipeline.State(),
	}
}

// Cart returns the current cart.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *Session) ensureCartMutable() error {
	if !s.pipeline.CartMutable() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is locked while a payment is in progress")
	}
	s.pipeline.Reopen()
	return nil
}

// AddToCart adds one unit of a product. firstItem reports that the cart went
// from empty to one entry.
func (s *Session) AddToCart(id string) (CartView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.product(id)
	if err != nil {
		return CartView{}, false, err
	}
	if err := s.ensureCartMutable(); err != nil {
		return CartView{}, false, err
	}
	wasEmpty := s.cart.IsEmpty()
	s.cart.AddItem(p)
	return s.cartView(), wasEmpty, nil
}

// UpdateQuantity adjusts a cart line by delta, never below one.
func (s *Session) UpdateQuantity(id string, delta int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartMutable(); err != nil {
		return CartView{}, err
	}
	s.cart.UpdateQuantity(id, delta)
	return s.cartView(), nil
}

// RemoveFromCart drops a cart line. Emptying the cart while on the checkout
// screen returns the shopper to the storefront.
func (s *Session) RemoveFromCart(id string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartMutable(); err != nil {
		return CartView{}, err
	}
	s.cart.RemoveItem(id)
	if s.cart.IsEmpty() && s.nav.Current() == enums.ViewCheckout {
		s.nav.Go(enums.ViewStorefront)
	}
	return s.cartView(), nil
}

// ToggleWishlist flips a product's wishlist membership and persists it.
func (s *Session) ToggleWishlist(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.product(id); err != nil {
		return false, err
	}
	return s.wishlist.Toggle(ctx, id)
}

// Wishlist returns the wishlisted products.
func (s *Session) Wishlist() WishlistView {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.wishlist.IDs()
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.Get(id); ok {
			products = append(products, p)
		}
	}
	return WishlistView{IDs: ids, Products: products}
}

// View is the current screen.
func (s *Session) View() enums.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// Navigate switches screens. The checkout screen needs a non-empty cart.
func (s *Session) Navigate(v enums.View) error {
	if !v.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown view %q", v))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if v == enums.ViewCheckout && s.cart.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	s.nav.Go(v)
	return nil
}

// Checkout pays for the cart and records the order. The session lock is
// released while the gateway runs.
func (s *Session) Checkout(ctx context.Context, customer orders.Customer) (orders.Order, error) {
	s.mu.Lock()
	attempt, err := s.pipeline.Prepare(customer)
	s.mu.Unlock()
	if err != nil {
		return orders.Order{}, err
	}

	var (
		paid   bool
		payErr error
	)
	if s.deps.Gateway == nil {
		payErr = pkgerrors.New(pkgerrors.CodeDependency, "payment gateway not configured")
	} else {
		paid, payErr = s.deps.Gateway.Pay(ctx, attempt.Total)
	}
	logg := s.deps.Logger
	logCtx := logg.WithSessionID(ctx, s.id)
	switch {
	case payErr != nil:
		s.deps.Metrics.IncPayment(string(enums.PaymentOutcomeError))
		logg.Warn(logCtx, fmt.Sprintf("payment gateway error: %v", payErr))
	case paid:
		s.deps.Metrics.IncPayment(string(enums.PaymentOutcomeApproved))
	default:
		s.deps.Metrics.IncPayment(string(enums.PaymentOutcomeDeclined))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.pipeline.Settle(context.WithoutCancel(ctx), attempt, paid && payErr == nil)
	if err != nil {
		return orders.Order{}, err
	}
	total, _ := order.Total.Float64()
	s.deps.Metrics.ObserveOrder(total)
	s.nav.ShowOrder(order)
	logg.Info(logg.WithOrderID(logCtx, order.ID), "order completed")
	return order, nil
}

// CheckoutStatus reports the pipeline state and the amount due.
func (s *Session) CheckoutStatus() CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := CheckoutView{
		State:       s.pipeline.State(),
		LastOutcome: s.pipeline.LastOutcome(),
		LastFailure: s.pipeline.LastFailure(),
		Total:       s.cart.Total(s.catalog),
		Count:       s.cart.Count(),
	}
	if order, ok := s.pipeline.LastOrder(); ok {
		status.LastOrder = &order
	}
	return status
}

// Orders returns the persisted order history, oldest first.
func (s *Session) Orders() []orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.All()
}

// OrderPage is one page of the order history plus the next cursor.
type OrderPage struct {
	Orders     []orders.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrdersPage pages through the order history, oldest first.
func (s *Session) OrdersPage(params pagination.Params) (OrderPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return OrderPage{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	page, next := s.history.Page(cursor, params.Limit)
	out := OrderPage{Orders: page}
	if next != nil {
		out.NextCursor = pagination.EncodeCursor(*next)
	}
	return out, nil
}

// LastOrder is the order most recently completed in this session.
func (s *Session) LastOrder() (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order, ok := s.nav.LastOrder(); ok {
		return order, nil
	}
	return orders.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "no order completed in this session")
}

// Studio returns the last generated design concept.
func (s *Session) Studio() (StudioImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.studio == nil {
		return StudioImage{}, false
	}
	return *s.studio, true
}

func (s *Session) advisor() *advisor.Advisor {
	return s.deps.Advisor
}
