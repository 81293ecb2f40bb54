package enums

// CheckoutState is the position of a session's order pipeline.
type CheckoutState string

const (
	CheckoutStateBuilding   CheckoutState = "building"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateCompleted  CheckoutState = "completed"
	CheckoutStateFailed     CheckoutState = "failed"
)

var validCheckoutStates = []CheckoutState{
	CheckoutStateBuilding,
	CheckoutStateSubmitting,
	CheckoutStateCompleted,
	CheckoutStateFailed,
}

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutState.
func (c CheckoutState) IsValid() bool {
	for _, candidate := range validCheckoutStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// CartMutable reports whether cart edits are allowed in this state.
func (c CheckoutState) CartMutable() bool {
	return c != CheckoutStateSubmitting
}
