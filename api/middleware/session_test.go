package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mansi-10-4/nova/internal/storefront"
	pkgAuth "github.com/Mansi-10-4/nova/pkg/auth"
	"github.com/Mansi-10-4/nova/pkg/config"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{Secret: "test-secret", Issuer: "nova", TTL: time.Hour}
}

func captureSession(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		*seen = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMintsTokenWhenMissing(t *testing.T) {
	cfg := testSessionConfig()
	var seen string
	handler := Session(cfg, storefront.NewManager(storefront.Deps{}), nil)(captureSession(&seen))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	token := rec.Header().Get(sessionTokenHeader)
	if token == "" {
		t.Fatal("expected a new session token")
	}
	claims, err := pkgAuth.ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("minted token does not parse: %v", err)
	}
	if claims.SessionID() != seen {
		t.Fatalf("expected handler to see session %s, got %s", claims.SessionID(), seen)
	}
}

func TestSessionReusesValidToken(t *testing.T) {
	cfg := testSessionConfig()
	manager := storefront.NewManager(storefront.Deps{})
	token, err := pkgAuth.MintSessionToken(cfg, time.Now(), "shopper-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	for _, header := range []string{"Authorization", sessionTokenHeader} {
		var seen string
		handler := Session(cfg, manager, nil)(captureSession(&seen))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		if header == "Authorization" {
			req.Header.Set(header, "Bearer "+token)
		} else {
			req.Header.Set(header, token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if seen != "shopper-1" {
			t.Fatalf("%s: expected shopper-1, got %q", header, seen)
		}
		if rec.Header().Get(sessionTokenHeader) != "" {
			t.Fatalf("%s: no new token expected for a valid session", header)
		}
	}
	if manager.Len() != 1 {
		t.Fatalf("expected one live session, got %d", manager.Len())
	}
}

func TestSessionReplacesInvalidToken(t *testing.T) {
	cfg := testSessionConfig()
	var seen string
	handler := Session(cfg, storefront.NewManager(storefront.Deps{}), nil)(captureSession(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(sessionTokenHeader) == "" || seen == "" {
		t.Fatal("expected a fresh session")
	}
}

func TestTokenlessRequestsDoNotGrowSessionsUnbounded(t *testing.T) {
	cfg := testSessionConfig()
	manager := storefront.NewManager(storefront.Deps{MaxSessions: 50})
	var seen string
	handler := Session(cfg, manager, nil)(captureSession(&seen))

	for i := 0; i < 500; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if manager.Len() > 50 {
		t.Fatalf("expected at most 50 live sessions, got %d", manager.Len())
	}
}
