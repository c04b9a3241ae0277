package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maisonvelour/storefront-backend/api/middleware"
	"github.com/maisonvelour/storefront-backend/api/responses"
	"github.com/maisonvelour/storefront-backend/api/validators"
	productsvc "github.com/maisonvelour/storefront-backend/internal/products"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
)

// AdminListProducts returns stock levels, optionally narrowed to one category.
func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		category := validators.SanitizeString(r.URL.Query().Get("category"), 64)
		if category != "" {
			parsed, err := enums.ParseProductCategory(category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			category = parsed.String()
		}

		products, err := svc.ListProducts(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

type updateInventoryRequest struct {
	Quantity      *int `json:"quantity" validate:"required,gte=0"`
	StoreQuantity *int `json:"storeQuantity" validate:"required,gte=0"`
}

// AdminUpdateInventory overwrites the online and in-store stock of a product.
func AdminUpdateInventory(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := strconv.ParseUint(chi.URLParam(r, "productId"), 10, 64)
		if err != nil || productID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateInventory(r.Context(), middleware.ActorFromContext(r.Context()), uint(productID), productsvc.UpdateInventoryInput{
			Quantity:      *payload.Quantity,
			StoreQuantity: *payload.StoreQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
