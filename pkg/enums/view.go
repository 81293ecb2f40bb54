package enums

import (
	"fmt"
	"strings"
)

// View enumerates the storefront screens.
type View string

const (
	ViewStorefront   View = "STOREFRONT"
	ViewCheckout     View = "CHECKOUT"
	ViewOrders       View = "ORDERS"
	ViewWishlist     View = "WISHLIST"
	ViewDesignStudio View = "DESIGN_STUDIO"
)

var validViews = []View{
	ViewStorefront,
	ViewCheckout,
	ViewOrders,
	ViewWishlist,
	ViewDesignStudio,
}

// String implements fmt.Stringer.
func (v View) String() string {
	return string(v)
}

// IsValid reports whether the value is a known View.
func (v View) IsValid() bool {
	for _, candidate := range validViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseView converts raw input into a View; matching ignores case.
func ParseView(value string) (View, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validViews {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view %q", value)
}
