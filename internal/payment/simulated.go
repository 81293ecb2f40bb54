package payment

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// Simulated approves a fixed share of payments after a fixed delay.
type Simulated struct {
	latency     time.Duration
	successRate float64
	roll        func() float64
}

// NewSimulated builds a simulated gateway. successRate is clamped to [0, 1].
func NewSimulated(latency time.Duration, successRate float64) *Simulated {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	return &Simulated{latency: latency, successRate: successRate, roll: rand.Float64}
}

// Pay waits for the configured latency, then approves when a uniform roll
// lands under the success rate. Cancelling ctx aborts the wait.
func (s *Simulated) Pay(ctx context.Context, _ decimal.Decimal) (bool, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}
	return s.roll() < s.successRate, nil
}
