package inventory

import (
	"net/http"

	"github.com/maisonvelour/storefront-backend/api/validators"
	inventorysvc "github.com/maisonvelour/storefront-backend/internal/inventory"
)

const (
	maxDaysToPredict = 365
	categoryMaxLen   = 64
)

// trendParamsFromRequest reads the forecast filters. Malformed values are
// treated as absent so the service falls back to its defaults.
func trendParamsFromRequest(r *http.Request) inventorysvc.TrendParams {
	params := inventorysvc.TrendParams{
		Category: validators.SanitizeString(r.URL.Query().Get("category"), categoryMaxLen),
	}
	if days, err := validators.ParseQueryInt(r, "days", 0, 1, maxDaysToPredict); err == nil {
		params.DaysToPredict = days
	}
	if r.URL.Query().Has("minConfidence") {
		if minConfidence, err := validators.ParseQueryFloat(r, "minConfidence", 0, 0, 1); err == nil {
			params.MinConfidence = &minConfidence
		}
	}
	if ids, err := validators.ParseQueryIDList(r, "includeProducts"); err == nil {
		params.IncludeProducts = ids
	}
	if ids, err := validators.ParseQueryIDList(r, "excludeProducts"); err == nil {
		params.ExcludeProducts = ids
	}
	return params
}
