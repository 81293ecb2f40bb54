package orders

import (
	"time"

	"github.com/Mansi-10-4/nova/internal/cart"
	"github.com/Mansi-10-4/nova/pkg/enums"
	"github.com/shopspring/decimal"
)

// Customer is the contact captured at checkout.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// Order is an immutable record of a paid purchase.
type Order struct {
	ID        string            `json:"id"`
	Items     []cart.Item       `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	Status    enums.OrderStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Customer  Customer          `json:"customer"`
}

// Clone deep-copies the order so callers cannot reach the history's items.
func (o Order) Clone() Order {
	items := make([]cart.Item, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
