package wishlist

import (
	"context"
	"encoding/json"
	"errors"

	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/kv"
)

// Wishlist is a persisted set of product ids. Insertion order is kept for
// display only. Not safe for concurrent use.
type Wishlist struct {
	store kv.Store
	key   string
	ids   []string
}

func New(store kv.Store, sessionID string) *Wishlist {
	return &Wishlist{store: store, key: kv.WishlistKey(sessionID)}
}

// Load replaces the in-memory set with the persisted one. Missing or corrupt
// data loads as empty; duplicate ids in stored data are collapsed.
func (w *Wishlist) Load(ctx context.Context) error {
	raw, err := w.store.Get(ctx, w.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			w.ids = nil
			return nil
		}
		return err
	}
	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		w.ids = nil
		return nil
	}
	w.ids = w.ids[:0]
	seen := make(map[string]struct{}, len(decoded))
	for _, id := range decoded {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		w.ids = append(w.ids, id)
	}
	return nil
}

// Save persists the current set.
func (w *Wishlist) Save(ctx context.Context) error {
	ids := w.ids
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return w.store.Set(ctx, w.key, raw)
}

// Toggle adds id when absent and removes it when present, then persists.
// It returns whether id is now in the set. When persisting fails the toggle
// is undone and a DEPENDENCY_ERROR is returned.
func (w *Wishlist) Toggle(ctx context.Context, id string) (bool, error) {
	prev := append([]string(nil), w.ids...)
	added := w.flip(id)
	if err := w.Save(ctx); err != nil {
		w.ids = prev
		return !added, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving wishlist").
			WithDetails(map[string]any{"product_id": id})
	}
	return added, nil
}

func (w *Wishlist) flip(id string) bool {
	for i, existing := range w.ids {
		if existing == id {
			w.ids = append(w.ids[:i:i], w.ids[i+1:]...)
			return false
		}
	}
	w.ids = append(w.ids, id)
	return true
}

func (w *Wishlist) Contains(id string) bool {
	for _, existing := range w.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the set in insertion order.
func (w *Wishlist) IDs() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

func (w *Wishlist) Len() int {
	return len(w.ids)
}
