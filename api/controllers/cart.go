package controllers

import (
	"net/http"

	"github.com/amontes/storefront-backend/api/middleware"
	"github.com/amontes/storefront-backend/api/responses"
	"github.com/amontes/storefront-backend/api/validators"
	"github.com/amontes/storefront-backend/internal/cart"
	"github.com/amontes/storefront-backend/internal/catalog"
	pkgerrors "github.com/amontes/storefront-backend/pkg/errors"
	"github.com/amontes/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineView is a cart line as returned to the client.
type CartLineView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartView is the full cart snapshot the client renders from.
type CartView struct {
	Items      []CartLineView  `json:"items"`
	ItemsCount int             `json:"items_count"`
	Total      decimal.Decimal `json:"total"`
}

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest changes a line quantity. Zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func cartViewOf(store *cart.Store) CartView {
	lines := store.Lines()
	items := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		items = append(items, CartLineView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Image:     line.ImageURL,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		})
	}
	return CartView{
		Items:      items,
		ItemsCount: store.ItemCount(),
		Total:      store.Total(),
	}
}

func sessionCart(r *http.Request, hub *cart.Hub) (*cart.Store, uuid.UUID, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}
	if hub == nil {
		return nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable")
	}
	return hub.Acquire(userID), userID, nil
}

// CartGet returns the current cart snapshot.
func CartGet(hub *cart.Hub, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionCart(r, hub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewOf(store))
	}
}

// CartAddItem resolves the product against the catalog, checks stock, and
// merges it into the cart.
func CartAddItem(hub *cart.Hub, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionCart(r, hub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body AddCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.ResolveForCart(r.Context(), body.ProductID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.AddItem(product.CartSnapshot(), body.Quantity)

		responses.WriteSuccess(w, cartViewOf(store))
	}
}

// CartUpdateItem sets the quantity on an existing line.
func CartUpdateItem(hub *cart.Hub, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionCart(r, hub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateQuantity(productID, body.Quantity)
		responses.WriteSuccess(w, cartViewOf(store))
	}
}

// CartRemoveItem deletes a line from the cart.
func CartRemoveItem(hub *cart.Hub, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionCart(r, hub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Remove(productID)
		responses.WriteSuccess(w, cartViewOf(store))
	}
}

// CartClear empties the cart.
func CartClear(hub *cart.Hub, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionCart(r, hub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear()
		responses.WriteSuccess(w, cartViewOf(store))
	}
}
