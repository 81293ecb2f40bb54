package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway charges an amount and reports whether the payment was approved.
// A non-nil error means the gateway could not be reached; callers treat it
// as a decline.
type Gateway interface {
	Pay(ctx context.Context, amount decimal.Decimal) (bool, error)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, amount decimal.Decimal) (bool, error)

func (f GatewayFunc) Pay(ctx context.Context, amount decimal.Decimal) (bool, error) {
	return f(ctx, amount)
}
