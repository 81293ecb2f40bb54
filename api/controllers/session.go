package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Mansi-10-4/nova/api/middleware"
	"github.com/Mansi-10-4/nova/internal/storefront"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
)

const maxProductIDLength = 64

func sessionFromRequest(r *http.Request) (*storefront.Session, error) {
	s := middleware.SessionFromContext(r.Context())
	if s == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing")
	}
	return s, nil
}

func productIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "productId"))
	if id == "" || len(id) > maxProductIDLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return id, nil
}
