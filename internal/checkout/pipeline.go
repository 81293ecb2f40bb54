// Package checkout runs the order pipeline: a cart snapshot is repriced
// against the catalog, paid through a gateway and, on approval, recorded as
// an immutable order.
package checkout

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"time"

	"github.com/Mansi-10-4/nova/internal/cart"
	"github.com/Mansi-10-4/nova/internal/catalog"
	"github.com/Mansi-10-4/nova/internal/orders"
	"github.com/Mansi-10-4/nova/internal/payment"
	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/validation"
	"github.com/shopspring/decimal"
)

const maxIDAttempts = 8

// Attempt is one in-flight submission.
type Attempt struct {
	Items    []cart.Item
	Total    decimal.Decimal
	Customer orders.Customer
	seq      uint64
}

// Options tunes a Pipeline. Zero values pick production defaults.
type Options struct {
	Now     func() time.Time
	Entropy io.Reader
	// OnPersistError is called when a paid order could not be written to
	// the history store. The order still completes.
	OnPersistError func(ctx context.Context, order orders.Order, err error)
}

// Pipeline is the checkout state machine for one session:
// Building -> Submitting -> Completed, or back to Building after a decline.
// Not safe for concurrent use.
type Pipeline struct {
	cart    *cart.Cart
	prices  catalog.PriceBook
	history *orders.History

	state       enums.CheckoutState
	lastOutcome enums.CheckoutState
	lastFailure string
	lastOrder   *orders.Order
	seq         uint64

	now            func() time.Time
	entropy        io.Reader
	onPersistError func(ctx context.Context, order orders.Order, err error)
}

func NewPipeline(c *cart.Cart, prices catalog.PriceBook, history *orders.History, opts Options) *Pipeline {
	p := &Pipeline{
		cart:           c,
		prices:         prices,
		history:        history,
		state:          enums.CheckoutStateBuilding,
		now:            opts.Now,
		entropy:        opts.Entropy,
		onPersistError: opts.OnPersistError,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.entropy == nil {
		p.entropy = rand.Reader
	}
	return p
}

// State is the current pipeline state.
func (p *Pipeline) State() enums.CheckoutState {
	return p.state
}

// LastOutcome is Completed or Failed for the most recent settled attempt,
// empty before the first one.
func (p *Pipeline) LastOutcome() enums.CheckoutState {
	return p.lastOutcome
}

// LastFailure is the user-facing message of the most recent decline.
func (p *Pipeline) LastFailure() string {
	return p.lastFailure
}

// LastOrder is the order produced by the most recent successful attempt.
func (p *Pipeline) LastOrder() (orders.Order, bool) {
	if p.lastOrder == nil {
		return orders.Order{}, false
	}
	return p.lastOrder.Clone(), true
}

// CartMutable reports whether the cart may be edited right now.
func (p *Pipeline) CartMutable() bool {
	return p.state.CartMutable()
}

// Reopen moves a Completed pipeline back to Building once the shopper starts
// a new cart.
func (p *Pipeline) Reopen() {
	if p.state == enums.CheckoutStateCompleted {
		p.state = enums.CheckoutStateBuilding
	}
}

// Prepare validates the submission, freezes the cart and returns the repriced
// snapshot to charge. Validation failures leave all state untouched.
func (p *Pipeline) Prepare(customer orders.Customer) (Attempt, error) {
	if p.state == enums.CheckoutStateSubmitting {
		return Attempt{}, pkgerrors.New(pkgerrors.CodeStateConflict, "a payment is already in progress")
	}
	if p.cart.IsEmpty() {
		return Attempt{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	if err := validation.Struct(&customer); err != nil {
		return Attempt{}, err
	}

	items := p.cart.Items()
	for i := range items {
		if price, ok := p.prices.Price(items[i].ID); ok {
			items[i].Price = price
		} else {
			items[i].Price = decimal.Zero
		}
	}

	p.seq++
	p.state = enums.CheckoutStateSubmitting
	return Attempt{
		Items:    items,
		Total:    cart.Total(items, p.prices),
		Customer: customer,
		seq:      p.seq,
	}, nil
}

// Settle resolves an attempt with the gateway's verdict. On approval the
// order is recorded and the cart cleared; on decline the cart is kept and a
// PAYMENT_DECLINED error is returned.
func (p *Pipeline) Settle(ctx context.Context, attempt Attempt, paid bool) (orders.Order, error) {
	if p.state != enums.CheckoutStateSubmitting || attempt.seq != p.seq {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout attempt is no longer active")
	}

	if !paid {
		p.state = enums.CheckoutStateBuilding
		p.lastOutcome = enums.CheckoutStateFailed
		p.lastFailure = "Payment failed. Please try again."
		return orders.Order{}, pkgerrors.New(pkgerrors.CodePaymentDeclined, p.lastFailure).
			WithDetails(map[string]any{"total": attempt.Total.StringFixed(2)})
	}

	id, err := p.newOrderID()
	if err != nil {
		p.state = enums.CheckoutStateBuilding
		p.lastOutcome = enums.CheckoutStateFailed
		p.lastFailure = "Order could not be recorded."
		return orders.Order{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating order id")
	}

	order := orders.Order{
		ID:        id,
		Items:     attempt.Items,
		Total:     attempt.Total,
		Status:    enums.OrderStatusCompleted,
		Timestamp: p.now().UTC(),
		Customer:  attempt.Customer,
	}
	if err := p.history.Append(ctx, order); err != nil && p.onPersistError != nil {
		p.onPersistError(ctx, order, err)
	}

	p.cart.Clear()
	p.state = enums.CheckoutStateCompleted
	p.lastOutcome = enums.CheckoutStateCompleted
	p.lastFailure = ""
	stored := order.Clone()
	p.lastOrder = &stored
	return order.Clone(), nil
}

// Submit runs Prepare, pays through gateway and settles in one call. Gateway
// errors count as a decline.
func (p *Pipeline) Submit(ctx context.Context, customer orders.Customer, gateway payment.Gateway) (orders.Order, error) {
	attempt, err := p.Prepare(customer)
	if err != nil {
		return orders.Order{}, err
	}
	paid, err := gateway.Pay(ctx, attempt.Total)
	return p.Settle(ctx, attempt, paid && err == nil)
}

func (p *Pipeline) newOrderID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := orders.NewID(p.entropy)
		if err != nil {
			return "", err
		}
		if !p.history.Has(id) {
			return id, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "could not generate a unique order id")
}
