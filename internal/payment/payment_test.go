package payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedUsesSuccessRate(t *testing.T) {
	g := NewSimulated(0, 0.95)

	g.roll = func() float64 { return 0.94 }
	ok, err := g.Pay(context.Background(), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, ok)

	g.roll = func() float64 { return 0.95 }
	ok, err = g.Pay(context.Background(), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSimulatedClampsRate(t *testing.T) {
	assert.Equal(t, 1.0, NewSimulated(0, 3).successRate)
	assert.Equal(t, 0.0, NewSimulated(0, -1).successRate)
}

func TestSimulatedWaitsForLatency(t *testing.T) {
	g := NewSimulated(20*time.Millisecond, 1)
	start := time.Now()
	ok, err := g.Pay(context.Background(), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulatedHonoursCancellation(t *testing.T) {
	g := NewSimulated(time.Hour, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := g.Pay(ctx, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

type recordingConfirmer struct {
	amount   int64
	currency string
	approve  bool
}

func (r *recordingConfirmer) ConfirmPayment(_ context.Context, amountMinor int64, currency string) (bool, error) {
	r.amount = amountMinor
	r.currency = currency
	return r.approve, nil
}

func TestStripeConvertsToMinorUnits(t *testing.T) {
	rec := &recordingConfirmer{approve: true}
	g := NewStripe(rec, "usd")

	ok, err := g.Pay(context.Background(), decimal.RequireFromString("1089.00"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 108900, rec.amount)
	assert.Equal(t, "usd", rec.currency)

	_, err = g.Pay(context.Background(), decimal.Zero)
	assert.Error(t, err)
}

func TestGatewayFunc(t *testing.T) {
	var g Gateway = GatewayFunc(func(context.Context, decimal.Decimal) (bool, error) { return true, nil })
	ok, err := g.Pay(context.Background(), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, ok)
}
