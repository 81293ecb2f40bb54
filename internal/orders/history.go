package orders

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Mansi-10-4/nova/pkg/kv"
	"github.com/Mansi-10-4/nova/pkg/pagination"
)

// History is a session's append-only order log backed by a kv.Store.
// Not safe for concurrent use.
type History struct {
	store  kv.Store
	key    string
	orders []Order
}

func NewHistory(store kv.Store, sessionID string) *History {
	return &History{store: store, key: kv.OrdersKey(sessionID)}
}

// Load replaces the in-memory log with the persisted one. A missing or
// unreadable blob loads as an empty history; only store failures error.
func (h *History) Load(ctx context.Context) error {
	raw, err := h.store.Get(ctx, h.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			h.orders = nil
			return nil
		}
		return err
	}
	var decoded []Order
	if err := json.Unmarshal(raw, &decoded); err != nil {
		h.orders = nil
		return nil
	}
	h.orders = decoded
	return nil
}

// Append records order and persists the full log. The in-memory log keeps the
// order even when persisting fails; the error is returned for logging.
func (h *History) Append(ctx context.Context, order Order) error {
	h.orders = append(h.orders, order.Clone())
	raw, err := json.Marshal(h.orders)
	if err != nil {
		return err
	}
	return h.store.Set(ctx, h.key, raw)
}

// All returns copies of every order, oldest first.
func (h *History) All() []Order {
	out := make([]Order, len(h.orders))
	for i, o := range h.orders {
		out[i] = o.Clone()
	}
	return out
}

// Len is the number of recorded orders.
func (h *History) Len() int {
	return len(h.orders)
}

// Has reports whether an order with id is already recorded.
func (h *History) Has(id string) bool {
	for _, o := range h.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Find returns the order with id.
func (h *History) Find(id string) (Order, bool) {
	for _, o := range h.orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return Order{}, false
}

// Page returns up to limit orders recorded after cursor, oldest first, and
// the cursor for the following page when more remain.
func (h *History) Page(after *pagination.Cursor, limit int) ([]Order, *pagination.Cursor) {
	limit = pagination.NormalizeLimit(limit)
	start := 0
	if after != nil {
		start = h.indexAfter(*after)
	}
	end := start + limit
	if end > len(h.orders) {
		end = len(h.orders)
	}

	page := make([]Order, 0, end-start)
	for _, o := range h.orders[start:end] {
		page = append(page, o.Clone())
	}
	if end == len(h.orders) || len(page) == 0 {
		return page, nil
	}
	last := page[len(page)-1]
	return page, &pagination.Cursor{Timestamp: last.Timestamp, ID: last.ID}
}

// indexAfter finds the first position past cursor. Unknown ids fall back to
// the first order stamped later than the cursor.
func (h *History) indexAfter(cursor pagination.Cursor) int {
	for i, o := range h.orders {
		if o.ID == cursor.ID {
			return i + 1
		}
	}
	for i, o := range h.orders {
		if o.Timestamp.After(cursor.Timestamp) {
			return i
		}
	}
	return len(h.orders)
}
