package controllers

import (
	"net/http"

	"github.com/amontes/storefront-backend/api/responses"
	"github.com/amontes/storefront-backend/api/validators"
	"github.com/amontes/storefront-backend/internal/cart"
	"github.com/amontes/storefront-backend/internal/checkout"
	pkgerrors "github.com/amontes/storefront-backend/pkg/errors"
	"github.com/amontes/storefront-backend/pkg/logger"
	"github.com/amontes/storefront-backend/pkg/types"
)

// CheckoutRequest carries the shipping details for placing an order.
type CheckoutRequest struct {
	ShippingAddress types.ShippingAddress `json:"shipping_address" validate:"required"`
}

// Checkout submits the session cart to the order service.
func Checkout(hub *cart.Hub, svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, userID, err := sessionCart(r, hub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body CheckoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Execute(r.Context(), userID, store, body.ShippingAddress)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
