package controllers

import (
	"net/http"

	"github.com/maisonvelour/storefront-backend/api/responses"
	"github.com/maisonvelour/storefront-backend/api/validators"
	"github.com/maisonvelour/storefront-backend/internal/activity"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"github.com/maisonvelour/storefront-backend/pkg/pagination"
)

// AdminListActivity pages through the admin activity trail, newest first.
func AdminListActivity(svc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		result, err := svc.List(r.Context(), activity.ListParams{
			Limit:   limit,
			Cursor:  query.Get("cursor"),
			ActorID: validators.SanitizeString(query.Get("actorId"), 64),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
