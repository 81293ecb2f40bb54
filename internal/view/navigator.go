// Package view tracks which screen a shopper is on.
package view

import (
	"github.com/Mansi-10-4/nova/internal/orders"
	"github.com/Mansi-10-4/nova/pkg/enums"
)

// Navigator is a flat screen selector with no history. Not safe for
// concurrent use.
type Navigator struct {
	current   enums.View
	lastOrder *orders.Order
	onEnter   map[enums.View][]func()
}

func NewNavigator() *Navigator {
	return &Navigator{current: enums.ViewStorefront}
}

// OnEnter registers fn to run every time v is entered, including re-entry.
func (n *Navigator) OnEnter(v enums.View, fn func()) {
	if n.onEnter == nil {
		n.onEnter = map[enums.View][]func(){}
	}
	n.onEnter[v] = append(n.onEnter[v], fn)
}

// Go switches to v and reports whether the screen changed.
func (n *Navigator) Go(v enums.View) bool {
	changed := n.current != v
	n.current = v
	for _, fn := range n.onEnter[v] {
		fn()
	}
	return changed
}

func (n *Navigator) Current() enums.View {
	return n.current
}

// ShowOrder jumps to the orders screen highlighting order.
func (n *Navigator) ShowOrder(order orders.Order) {
	stored := order.Clone()
	n.lastOrder = &stored
	n.Go(enums.ViewOrders)
}

// LastOrder returns the order passed to the most recent ShowOrder.
func (n *Navigator) LastOrder() (orders.Order, bool) {
	if n.lastOrder == nil {
		return orders.Order{}, false
	}
	return n.lastOrder.Clone(), true
}
