package controllers

import (
	"net/http"

	"github.com/Mansi-10-4/nova/api/responses"
	"github.com/Mansi-10-4/nova/api/validators"
	"github.com/Mansi-10-4/nova/internal/storefront"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
}

type updateCartItemRequest struct {
	Delta int `json:"delta" validate:"ne=0,min=-99,max=99"`
}

type cartResponse struct {
	storefront.CartView
	FirstItem bool `json:"first_item,omitempty"`
}

// CartFetch returns the session cart with its repriced total.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{CartView: s.Cart()})
	}
}

// CartAddItem adds one unit of a product.
func CartAddItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, first, err := s.AddToCart(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{CartView: view, FirstItem: first})
	}
}

// CartUpdateItem changes a line quantity by delta, never below one.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := s.UpdateQuantity(id, payload.Delta)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{CartView: view})
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := s.RemoveFromCart(id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{CartView: view})
	}
}
