package stripe

import (
	"context"
	"errors"
	"testing"

	"github.com/Mansi-10-4/nova/pkg/config"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
)

type fakeIntents struct {
	params *stripe.PaymentIntentCreateParams
	intent *stripe.PaymentIntent
	err    error
}

func (f *fakeIntents) Create(_ context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error) {
	f.params = params
	return f.intent, f.err
}

func TestNewClientValidatesKeys(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, config.StripeConfig{Env: "test"}, nil)
	require.ErrorIs(t, err, errAPIKeyRequired)

	_, err = NewClient(ctx, config.StripeConfig{Env: "test", APIKey: "sk_live_123"}, nil)
	require.Error(t, err)

	_, err = NewClient(ctx, config.StripeConfig{Env: "staging", APIKey: "sk_test_123"}, nil)
	require.Error(t, err)

	client, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_test_123"}, nil)
	require.NoError(t, err)
	require.Equal(t, "test", client.Environment())
	require.Equal(t, "pm_card_visa", client.paymentMethod)
}

func TestConfirmPaymentSucceeded(t *testing.T) {
	fake := &fakeIntents{intent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded}}
	client := &Client{intents: fake, paymentMethod: "pm_card_visa"}

	ok, err := client.ConfirmPayment(context.Background(), 108900, "USD")
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 108900, *fake.params.Amount)
	require.Equal(t, "usd", *fake.params.Currency)
	require.True(t, *fake.params.Confirm)
}

func TestConfirmPaymentCardDeclineIsNotAnError(t *testing.T) {
	fake := &fakeIntents{err: &stripe.Error{Type: stripe.ErrorTypeCard, Msg: "Your card was declined."}}
	client := &Client{intents: fake, paymentMethod: "pm_card_chargeDeclined"}

	ok, err := client.ConfirmPayment(context.Background(), 500, "usd")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestConfirmPaymentTransportError(t *testing.T) {
	client := &Client{intents: &fakeIntents{err: errors.New("dial tcp: timeout")}, paymentMethod: "pm_card_visa"}
	ok, err := client.ConfirmPayment(context.Background(), 500, "usd")
	require.Error(t, err)
	require.False(t, ok)
}

func TestConfirmPaymentRequiresAmount(t *testing.T) {
	client := &Client{intents: &fakeIntents{}, paymentMethod: "pm_card_visa"}
	_, err := client.ConfirmPayment(context.Background(), 0, "usd")
	require.Error(t, err)
}

func TestConfirmPaymentIncompleteStatus(t *testing.T) {
	fake := &fakeIntents{intent: &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusRequiresAction}}
	client := &Client{intents: fake, paymentMethod: "pm_card_visa"}
	ok, err := client.ConfirmPayment(context.Background(), 100, "usd")
	require.NoError(t, err)
	require.False(t, ok)
}
