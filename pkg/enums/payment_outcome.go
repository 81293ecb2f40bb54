package enums

// PaymentOutcome labels a gateway result for logging and metrics.
type PaymentOutcome string

const (
	PaymentOutcomeApproved PaymentOutcome = "approved"
	PaymentOutcomeDeclined PaymentOutcome = "declined"
	PaymentOutcomeError    PaymentOutcome = "error"
)

// String implements fmt.Stringer.
func (p PaymentOutcome) String() string {
	return string(p)
}
