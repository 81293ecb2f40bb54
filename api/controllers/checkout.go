package controllers

import (
	"net/http"

	"github.com/Mansi-10-4/nova/api/responses"
	"github.com/Mansi-10-4/nova/api/validators"
	"github.com/Mansi-10-4/nova/internal/orders"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

type checkoutRequest struct {
	Name  string `json:"name" validate:"max=200"`
	Email string `json:"email" validate:"max=320"`
}

// CheckoutStatus reports the pipeline state and the amount due.
func CheckoutStatus(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, s.CheckoutStatus())
	}
}

// CheckoutSubmit pays for the cart. A declined payment answers 402 and
// leaves the cart as it was.
func CheckoutSubmit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := s.Checkout(ctx, orders.Customer{Name: payload.Name, Email: payload.Email})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
