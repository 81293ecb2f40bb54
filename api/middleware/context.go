package middleware

import (
	"context"

	"github.com/Mansi-10-4/nova/internal/storefront"
)

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxSession   contextKey = "session"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// SessionFromContext returns the shopper session attached by Session.
func SessionFromContext(ctx context.Context) *storefront.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*storefront.Session); ok {
		return v
	}
	return nil
}

// WithSession injects the shopper session into the context.
func WithSession(ctx context.Context, s *storefront.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxSessionID, s.ID())
	return context.WithValue(ctx, ctxSession, s)
}
