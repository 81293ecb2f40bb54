package orders

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

const (
	idPrefix   = "ORD-"
	idLength   = 9
	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Bytes at or above this are discarded so every character is equally likely.
	idByteLimit = 256 - 256%len(idAlphabet)
)

// NewID returns "ORD-" followed by nine uppercase base36 characters read from r.
func NewID(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	var b strings.Builder
	b.Grow(len(idPrefix) + idLength)
	b.WriteString(idPrefix)

	buf := make([]byte, idLength)
	for need := idLength; need > 0; {
		if _, err := io.ReadFull(r, buf[:need]); err != nil {
			return "", fmt.Errorf("reading order id entropy: %w", err)
		}
		for _, v := range buf[:need] {
			if int(v) >= idByteLimit {
				continue
			}
			b.WriteByte(idAlphabet[int(v)%len(idAlphabet)])
			need--
		}
	}
	return b.String(), nil
}

// ValidID reports whether id has the order id shape.
func ValidID(id string) bool {
	if !strings.HasPrefix(id, idPrefix) || len(id) != len(idPrefix)+idLength {
		return false
	}
	for _, c := range id[len(idPrefix):] {
		if !strings.ContainsRune(idAlphabet, c) {
			return false
		}
	}
	return true
}
