package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mansi-10-4/nova/api/responses"
	"github.com/Mansi-10-4/nova/internal/storefront"
	pkgAuth "github.com/Mansi-10-4/nova/pkg/auth"
	"github.com/Mansi-10-4/nova/pkg/config"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

const sessionTokenHeader = "X-Session-Token"

type sessionProvider interface {
	Session(ctx context.Context, id string) (*storefront.Session, error)
}

// Session resolves the shopper session from a bearer or X-Session-Token
// header. Missing or invalid tokens start a fresh session whose token is
// returned in X-Session-Token.
func Session(cfg config.SessionConfig, sessions sessionProvider, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID := ""

			if token := sessionToken(r); token != "" {
				claims, err := pkgAuth.ParseSessionToken(cfg, token)
				if err == nil {
					sessionID = claims.SessionID()
				} else if logg != nil {
					logg.Info(logg.WithField(ctx, "reason", err.Error()), "session.token_rejected")
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				token, err := pkgAuth.MintSessionToken(cfg, time.Now(), sessionID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue session token"))
					return
				}
				w.Header().Set(sessionTokenHeader, token)
				if logg != nil {
					logg.Info(logg.WithSessionID(ctx, sessionID), "session.started")
				}
			}

			s, err := sessions.Session(ctx, sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithSession(ctx, s)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return strings.TrimSpace(r.Header.Get(sessionTokenHeader))
}
