package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type paymentConfirmer interface {
	ConfirmPayment(ctx context.Context, amountMinor int64, currency string) (bool, error)
}

// Stripe charges through Stripe PaymentIntents.
type Stripe struct {
	client   paymentConfirmer
	currency string
}

func NewStripe(client paymentConfirmer, currency string) *Stripe {
	return &Stripe{client: client, currency: currency}
}

// Pay converts amount to minor units (cents) and confirms a PaymentIntent.
func (s *Stripe) Pay(ctx context.Context, amount decimal.Decimal) (bool, error) {
	minor := amount.Shift(2).Round(0)
	if !minor.IsPositive() {
		return false, fmt.Errorf("amount must be positive, got %s", amount.String())
	}
	return s.client.ConfirmPayment(ctx, minor.IntPart(), s.currency)
}
