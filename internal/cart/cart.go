package cart

import (
	"github.com/Mansi-10-4/nova/internal/catalog"
	"github.com/shopspring/decimal"
)

// Item is a product line in the cart. The embedded product fields are
// display copies; totals always use catalog prices.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Cart maps product ids to quantities, keeping insertion order for display.
// Not safe for concurrent use.
type Cart struct {
	items []Item
	index map[string]int
}

func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// AddItem increments the quantity of an existing line or inserts a new one
// with quantity 1. It returns the resulting quantity.
func (c *Cart) AddItem(p catalog.Product) int {
	if i, ok := c.index[p.ID]; ok {
		c.items[i].Quantity++
		return c.items[i].Quantity
	}
	c.index[p.ID] = len(c.items)
	c.items = append(c.items, Item{Product: p, Quantity: 1})
	return 1
}

// UpdateQuantity adjusts a line by delta, never going below 1. Unknown ids
// are ignored. It returns the resulting quantity and whether the line exists.
func (c *Cart) UpdateQuantity(id string, delta int) (int, bool) {
	i, ok := c.index[id]
	if !ok {
		return 0, false
	}
	q := c.items[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.items[i].Quantity = q
	return q, true
}

// RemoveItem deletes a line. It reports whether anything was removed.
func (c *Cart) RemoveItem(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ID] = j
	}
	return true
}

// Total sums catalog price times quantity. Ids missing from the price book
// contribute zero.
func (c *Cart) Total(prices catalog.PriceBook) decimal.Decimal {
	return Total(c.items, prices)
}

// Total prices a set of lines against the catalog.
func Total(items []Item, prices catalog.PriceBook) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price, ok := prices.Price(item.ID)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count is the sum of quantities.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Quantity of one line; zero when absent.
func (c *Cart) Quantity(id string) int {
	if i, ok := c.index[id]; ok {
		return c.items[i].Quantity
	}
	return 0
}

// Items returns a copy of every line in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[string]int)
}
