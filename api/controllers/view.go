package controllers

import (
	"net/http"

	"github.com/Mansi-10-4/nova/api/responses"
	"github.com/Mansi-10-4/nova/api/validators"
	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

type navigateRequest struct {
	View string `json:"view" validate:"required"`
}

// ViewFetch returns the current screen.
func ViewFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]enums.View{"view": s.View()})
	}
}

// ViewNavigate switches screens.
func ViewNavigate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload navigateRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		target, err := enums.ParseView(payload.View)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid view").
				WithDetails(map[string]string{"view": "must be one of STOREFRONT, CHECKOUT, ORDERS, WISHLIST, DESIGN_STUDIO"}))
			return
		}

		if err := s.Navigate(target); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]enums.View{"view": s.View()})
	}
}
