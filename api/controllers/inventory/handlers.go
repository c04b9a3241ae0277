package inventory

import (
	"net/http"

	"github.com/maisonvelour/storefront-backend/api/responses"
	inventorysvc "github.com/maisonvelour/storefront-backend/internal/inventory"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
)

// Trends returns the per-product forecast filtered by the query string.
func Trends(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		trends, err := svc.PredictInventoryTrends(r.Context(), trendParamsFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nonNil(trends))
	}
}

// Alerts returns products that are close to selling out or losing momentum.
func Alerts(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		alerts, err := svc.InventoryAlerts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nonNil(alerts))
	}
}

// RestockPlan returns the reorder list with unit and cost totals.
func RestockPlan(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		plan, err := svc.RestockPlan(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		plan.Recommendations = nonNil(plan.Recommendations)
		responses.WriteSuccess(w, plan)
	}
}

func nonNil(trends []inventorysvc.ProductTrend) []inventorysvc.ProductTrend {
	if trends == nil {
		return []inventorysvc.ProductTrend{}
	}
	return trends
}
