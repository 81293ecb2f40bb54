package enums

import (
	"fmt"
	"strings"
)

// ImageSize is the resolution hint for generated imagery.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

var validImageSizes = []ImageSize{
	ImageSize1K,
	ImageSize2K,
	ImageSize4K,
}

// String implements fmt.Stringer.
func (s ImageSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ImageSize.
func (s ImageSize) IsValid() bool {
	for _, candidate := range validImageSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// HighRes reports whether the size needs the high-resolution image model.
func (s ImageSize) HighRes() bool {
	return s == ImageSize2K || s == ImageSize4K
}

// ParseImageSize converts raw input into an ImageSize. Empty input maps to 1K.
func ParseImageSize(value string) (ImageSize, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return ImageSize1K, nil
	}
	for _, candidate := range validImageSizes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid image size %q", value)
}
