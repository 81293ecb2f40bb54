package enums

import "fmt"

// SortMode orders catalog listings.
type SortMode string

const (
	SortModeDefault   SortMode = "default"
	SortModePriceLow  SortMode = "price-low"
	SortModePriceHigh SortMode = "price-high"
)

var validSortModes = []SortMode{
	SortModeDefault,
	SortModePriceLow,
	SortModePriceHigh,
}

// String implements fmt.Stringer.
func (s SortMode) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortMode.
func (s SortMode) IsValid() bool {
	for _, candidate := range validSortModes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortMode converts raw input into a SortMode. Empty input maps to default.
func ParseSortMode(value string) (SortMode, error) {
	if value == "" {
		return SortModeDefault, nil
	}
	for _, candidate := range validSortModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode %q", value)
}
