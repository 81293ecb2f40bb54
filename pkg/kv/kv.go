// Package kv is the persistence port for session blobs: wishlists and order
// histories are stored as opaque JSON documents under namespaced keys.
package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store persists opaque values by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

const namespace = "nova"

// WishlistKey is where a session's wishlist ids are stored.
func WishlistKey(sessionID string) string {
	return buildKey("wishlist", sessionID)
}

// OrdersKey is where a session's order history is stored.
func OrdersKey(sessionID string) string {
	return buildKey("orders", sessionID)
}

func buildKey(parts ...string) string {
	clean := []string{namespace}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clean = append(clean, part)
	}
	return strings.Join(clean, ":")
}
