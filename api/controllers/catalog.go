package controllers

import (
	"net/http"

	"github.com/Mansi-10-4/nova/api/responses"
	"github.com/Mansi-10-4/nova/api/validators"
	"github.com/Mansi-10-4/nova/pkg/enums"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

const maxCategoryLength = 64

// CatalogBrowse lists products filtered by category and sorted; the choice
// is remembered on the session.
func CatalogBrowse(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sortMode, hasSort, err := validators.ParseSortQuery(r, "sort")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var categoryArg *string
		if category, ok := validators.ParseStringQuery(r, "category", maxCategoryLength); ok {
			categoryArg = &category
		}
		var sortArg *enums.SortMode
		if hasSort {
			sortArg = &sortMode
		}

		responses.WriteSuccess(w, s.Browse(categoryArg, sortArg))
	}
}

// ProductDetail returns a product with its wishlist flag.
func ProductDetail(logg *logger.Logger) http.HandlerFunc {
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

		product, err := s.Product(id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductInsight returns the generated one-line pitch for a product.
func ProductInsight(logg *logger.Logger) http.HandlerFunc {
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

		text, err := s.Insight(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"product_id": id, "insight": text})
	}
}

// ProductRecommendations returns up to two cross-sell products.
func ProductRecommendations(logg *logger.Logger) http.HandlerFunc {
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

		recs, err := s.Recommendations(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product_id": id, "products": recs})
	}
}

// ProductVisualize generates a studio photograph for a product.
func ProductVisualize(logg *logger.Logger) http.HandlerFunc {
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

		result, err := s.Visualize(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
