package controllers

import (
	"net/http"

	"github.com/Mansi-10-4/nova/api/responses"
	"github.com/Mansi-10-4/nova/api/validators"
	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

type studioRequest struct {
	Prompt string `json:"prompt" validate:"required,max=2000"`
	Size   string `json:"size"`
}

// StudioFetch returns the last generated design concept.
func StudioFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		image, ok := s.Studio()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no design generated yet"))
			return
		}
		responses.WriteSuccess(w, image)
	}
}

// StudioGenerate renders a design concept from a free-form prompt.
func StudioGenerate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload studioRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		size, err := enums.ParseImageSize(payload.Size)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image size").
				WithDetails(map[string]string{"size": "must be one of 1K, 2K, 4K"}))
			return
		}

		result, err := s.GenerateDesign(ctx, payload.Prompt, size)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
