package storefront

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mansi-10-4/nova/internal/advisor"
	"github.com/Mansi-10-4/nova/internal/catalog"
	"github.com/Mansi-10-4/nova/internal/orders"
	"github.com/Mansi-10-4/nova/internal/payment"
	"github.com/Mansi-10-4/nova/pkg/config"
	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/gemini"
	"github.com/Mansi-10-4/nova/pkg/kv"
)

var jane = orders.Customer{Name: "Jane", Email: "jane@x.com"}

type stubModel struct {
	mu        sync.Mutex
	text      string
	textCalls int
	textGate  chan struct{}
	imageGate chan struct{}

	// callGates[n] holds back the n-th image call, which returns "png-n".
	callGates  []chan struct{}
	imageCalls int
}

func (m *stubModel) GenerateText(context.Context, string, string) (string, error) {
	m.mu.Lock()
	m.textCalls++
	gate := m.textGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return m.text, nil
}

func (m *stubModel) GenerateImage(context.Context, string, string, string) (gemini.Image, error) {
	if m.imageGate != nil {
		<-m.imageGate
	}
	m.mu.Lock()
	n := m.imageCalls
	m.imageCalls++
	m.mu.Unlock()
	if m.callGates == nil {
		return gemini.Image{MIMEType: "image/png", Data: []byte("png")}, nil
	}
	<-m.callGates[n]
	return gemini.Image{MIMEType: "image/png", Data: []byte(fmt.Sprintf("png-%d", n))}, nil
}

func (m *stubModel) images() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.imageCalls
}

func (m *stubModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textCalls
}

func fixedGateway(paid bool) payment.Gateway {
	return payment.GatewayFunc(func(context.Context, decimal.Decimal) (bool, error) { return paid, nil })
}

func newTestManager(t *testing.T, store kv.Store, gateway payment.Gateway, model advisor.Model) *Manager {
	t.Helper()
	if model == nil {
		model = &stubModel{text: "Quietly iconic."}
	}
	return NewManager(Deps{
		Store:   store,
		Advisor: advisor.New(model, config.GeminiConfig{}, nil, nil),
		Gateway: gateway,
		Now:     func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func session(t *testing.T, m *Manager, id string) *Session {
	t.Helper()
	s, err := m.Session(context.Background(), id)
	require.NoError(t, err)
	return s
}

func TestManagerReusesSessions(t *testing.T) {
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), nil)
	a := session(t, m, "a")
	assert.Same(t, a, session(t, m, "a"))
	assert.NotSame(t, a, session(t, m, "b"))
	assert.Equal(t, 2, m.Len())

	_, err := m.Session(context.Background(), "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	store := kv.NewMemory()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(Deps{
		Store:   store,
		IdleTTL: 10 * time.Minute,
		Now:     func() time.Time { return now },
	})

	idle := session(t, m, "idle")
	_, err := idle.ToggleWishlist(context.Background(), "3")
	require.NoError(t, err)
	session(t, m, "busy")

	now = now.Add(6 * time.Minute)
	session(t, m, "busy")
	assert.Equal(t, 2, m.Len())

	now = now.Add(6 * time.Minute)
	session(t, m, "busy")
	assert.Equal(t, 1, m.Len(), "idle session should be evicted")

	restored := session(t, m, "idle")
	assert.NotSame(t, idle, restored)
	assert.Equal(t, []string{"3"}, restored.Wishlist().IDs)
}

func TestManagerCapsLiveSessions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(Deps{
		MaxSessions: 3,
		Now:         func() time.Time { return now },
	})

	first := session(t, m, "s0")
	for i := 1; i < 50; i++ {
		now = now.Add(time.Second)
		session(t, m, fmt.Sprintf("s%d", i))
	}
	assert.Equal(t, 3, m.Len())
	assert.NotSame(t, first, session(t, m, "s0"))
}

func TestCheckoutScenario(t *testing.T) {
	store := kv.NewMemory()
	m := newTestManager(t, store, fixedGateway(true), nil)
	s := session(t, m, "a")

	_, first, err := s.AddToCart("1")
	require.NoError(t, err)
	assert.True(t, first)
	_, first, err = s.AddToCart("2")
	require.NoError(t, err)
	assert.False(t, first)
	cartView, _, err := s.AddToCart("2")
	require.NoError(t, err)
	assert.Equal(t, "1089.00", cartView.Total.StringFixed(2))
	require.NoError(t, s.Navigate(enums.ViewCheckout))

	order, err := s.Checkout(context.Background(), jane)
	require.NoError(t, err)
	assert.Equal(t, "1089.00", order.Total.StringFixed(2))
	assert.Equal(t, enums.OrderStatusCompleted, order.Status)
	assert.Equal(t, 0, s.Cart().Count)
	assert.Equal(t, enums.ViewOrders, s.View())

	last, err := s.LastOrder()
	require.NoError(t, err)
	assert.Equal(t, order.ID, last.ID)
	require.Len(t, s.Orders(), 1)

	restored := session(t, newTestManager(t, store, fixedGateway(true), nil), "a")
	require.Len(t, restored.Orders(), 1)
	assert.Equal(t, order.ID, restored.Orders()[0].ID)
	_, err = restored.LastOrder()
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestDeclinedCheckoutKeepsState(t *testing.T) {
	m := newTestManager(t, kv.NewMemory(), fixedGateway(false), nil)
	s := session(t, m, "a")
	_, _, err := s.AddToCart("3")
	require.NoError(t, err)
	require.NoError(t, s.Navigate(enums.ViewCheckout))

	_, err = s.Checkout(context.Background(), jane)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodePaymentDeclined))
	assert.Empty(t, s.Orders())
	assert.Equal(t, 1, s.Cart().Count)
	assert.Equal(t, enums.ViewCheckout, s.View())

	status := s.CheckoutStatus()
	assert.Equal(t, enums.CheckoutStateBuilding, status.State)
	assert.Equal(t, enums.CheckoutStateFailed, status.LastOutcome)
	assert.NotEmpty(t, status.LastFailure)
}

func TestEmptyCartCheckoutRejected(t *testing.T) {
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), nil)
	s := session(t, m, "a")

	_, err := s.Checkout(context.Background(), jane)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, s.Orders())

	err = s.Navigate(enums.ViewCheckout)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
	assert.Equal(t, enums.ViewStorefront, s.View())
}

func TestCartLockedWhileSubmitting(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	gateway := payment.GatewayFunc(func(context.Context, decimal.Decimal) (bool, error) {
		close(entered)
		<-release
		return true, nil
	})
	m := newTestManager(t, kv.NewMemory(), gateway, nil)
	s := session(t, m, "a")
	_, _, err := s.AddToCart("1")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Checkout(context.Background(), jane)
		done <- err
	}()
	<-entered

	_, _, err = s.AddToCart("2")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
	_, err = s.Checkout(context.Background(), jane)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
	assert.Equal(t, enums.CheckoutStateSubmitting, s.CheckoutStatus().State)

	close(release)
	require.NoError(t, <-done)

	cartView, first, err := s.AddToCart("2")
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, enums.CheckoutStateBuilding, cartView.State)
}

func TestRemovingLastItemLeavesCheckout(t *testing.T) {
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), nil)
	s := session(t, m, "a")
	_, _, err := s.AddToCart("4")
	require.NoError(t, err)
	require.NoError(t, s.Navigate(enums.ViewCheckout))

	cartView, err := s.UpdateQuantity("4", -5)
	require.NoError(t, err)
	assert.Equal(t, 1, cartView.Count)

	_, err = s.RemoveFromCart("4")
	require.NoError(t, err)
	assert.Equal(t, enums.ViewStorefront, s.View())
}

func TestBrowseRemembersFilterAndStorefrontResetsIt(t *testing.T) {
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), nil)
	s := session(t, m, "a")

	category := catalog.Seed()[0].Category
	sort := enums.SortModePriceHigh
	page := s.Browse(&category, &sort)
	assert.Equal(t, category, page.Category)
	for _, p := range page.Products {
		assert.Equal(t, category, p.Category)
	}

	page = s.Browse(nil, nil)
	assert.Equal(t, category, page.Category)
	assert.Equal(t, enums.SortModePriceHigh, page.Sort)

	require.NoError(t, s.Navigate(enums.ViewWishlist))
	require.NoError(t, s.Navigate(enums.ViewStorefront))
	page = s.Browse(nil, nil)
	assert.Equal(t, catalog.AllCategories, page.Category)
	assert.Len(t, page.Products, 8)
	assert.Equal(t, enums.SortModePriceHigh, page.Sort)
}

func TestWishlistPersistsAcrossManagers(t *testing.T) {
	store := kv.NewMemory()
	s := session(t, newTestManager(t, store, fixedGateway(true), nil), "a")

	added, err := s.ToggleWishlist(context.Background(), "5")
	require.NoError(t, err)
	assert.True(t, added)
	_, err = s.ToggleWishlist(context.Background(), "missing")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	restored := session(t, newTestManager(t, store, fixedGateway(true), nil), "a")
	list := restored.Wishlist()
	assert.Equal(t, []string{"5"}, list.IDs)
	require.Len(t, list.Products, 1)

	detail, err := restored.Product("5")
	require.NoError(t, err)
	assert.True(t, detail.Wishlisted)
}

func TestInsightIsCachedPerProduct(t *testing.T) {
	model := &stubModel{text: "Quietly iconic."}
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), model)
	s := session(t, m, "a")

	for i := 0; i < 3; i++ {
		text, err := s.Insight(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "Quietly iconic.", text)
	}
	assert.Equal(t, 1, model.calls())

	_, err := s.Insight(context.Background(), "missing")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestRecommendationsFetchedOnce(t *testing.T) {
	products := catalog.Seed()
	model := &stubModel{text: products[1].Name + ", " + products[2].Name}
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), model)
	s := session(t, m, "a")

	recs, err := s.Recommendations(context.Background(), products[0].ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	_, err = s.Recommendations(context.Background(), products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls())
}

func TestVisualizeAppliesImage(t *testing.T) {
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), nil)
	s := session(t, m, "a")

	res, err := s.Visualize(context.Background(), "2")
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "data:image/png;base64,cG5n", res.Product.Image)

	detail, err := s.Product("2")
	require.NoError(t, err)
	assert.Equal(t, res.Product.Image, detail.Image)
	assert.True(t, catalog.Seed()[1].Price.Equal(detail.Price))

	other := session(t, m, "b")
	untouched, err := other.Product("2")
	require.NoError(t, err)
	assert.Equal(t, catalog.Seed()[1].Image, untouched.Image)
}

func TestSupersededVisualizeDoesNotOverwrite(t *testing.T) {
	model := &stubModel{callGates: []chan struct{}{make(chan struct{}), make(chan struct{})}}
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), model)
	s := session(t, m, "a")

	older := make(chan VisualizeResult, 1)
	go func() {
		res, err := s.Visualize(context.Background(), "4")
		assert.NoError(t, err)
		older <- res
	}()
	require.Eventually(t, func() bool { return model.images() == 1 }, time.Second, time.Millisecond)

	newer := make(chan VisualizeResult, 1)
	go func() {
		res, err := s.Visualize(context.Background(), "4")
		assert.NoError(t, err)
		newer <- res
	}()
	require.Eventually(t, func() bool { return model.images() == 2 }, time.Second, time.Millisecond)

	close(model.callGates[1])
	latest := <-newer
	require.True(t, latest.Applied)

	close(model.callGates[0])
	stale := <-older
	assert.False(t, stale.Applied)
	assert.Equal(t, latest.Product.Image, stale.Product.Image)

	detail, err := s.Product("4")
	require.NoError(t, err)
	assert.Equal(t, latest.Product.Image, detail.Image)
	assert.Contains(t, detail.Image, base64.StdEncoding.EncodeToString([]byte("png-1")))
}

func TestSupersededInsightKeepsNewerText(t *testing.T) {
	model := &stubModel{text: "Older take.", textGate: make(chan struct{})}
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), model)
	s := session(t, m, "a")

	older := make(chan string, 1)
	go func() {
		text, err := s.Insight(context.Background(), "5")
		assert.NoError(t, err)
		older <- text
	}()
	require.Eventually(t, func() bool { return model.calls() == 1 }, time.Second, time.Millisecond)

	// A newer request for the same product lands first.
	s.mu.Lock()
	s.issue("insight:5", false)
	s.insights["5"] = "Newer take."
	s.mu.Unlock()

	close(model.textGate)
	assert.Equal(t, "Newer take.", <-older)

	cached, err := s.Insight(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "Newer take.", cached)
	assert.Equal(t, 1, model.calls())
}

func TestStudioResultDroppedAfterLeavingScreen(t *testing.T) {
	model := &stubModel{imageGate: make(chan struct{})}
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), model)
	s := session(t, m, "a")
	require.NoError(t, s.Navigate(enums.ViewDesignStudio))

	done := make(chan StudioResult, 1)
	go func() {
		res, err := s.GenerateDesign(context.Background(), "a walnut lounge chair", enums.ImageSize2K)
		assert.NoError(t, err)
		done <- res
	}()
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.tickets["studio"] != 0
	}, time.Second, time.Millisecond)

	require.NoError(t, s.Navigate(enums.ViewStorefront))
	close(model.imageGate)

	res := <-done
	assert.False(t, res.Applied)
	assert.NotEmpty(t, res.Image)
	_, ok := s.Studio()
	assert.False(t, ok)
}

func TestStudioResultStored(t *testing.T) {
	m := newTestManager(t, kv.NewMemory(), fixedGateway(true), nil)
	s := session(t, m, "a")

	_, err := s.GenerateDesign(context.Background(), "   ", enums.ImageSize1K)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	res, err := s.GenerateDesign(context.Background(), " a lamp ", enums.ImageSize1K)
	require.NoError(t, err)
	assert.True(t, res.Applied)

	stored, ok := s.Studio()
	require.True(t, ok)
	assert.Equal(t, "a lamp", stored.Prompt)
	assert.Equal(t, enums.ImageSize1K, stored.Size)
}
