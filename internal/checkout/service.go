package checkout

import (
	"context"
	"fmt"

	"github.com/amontes/storefront-backend/internal/cart"
	"github.com/amontes/storefront-backend/internal/orders"
	pkgerrors "github.com/amontes/storefront-backend/pkg/errors"
	"github.com/amontes/storefront-backend/pkg/types"
	"github.com/google/uuid"
)

// Service turns a session cart into a placed order.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, store *cart.Store, address types.ShippingAddress) (*orders.OrderDTO, error)
}

type orderCreator interface {
	Create(ctx context.Context, userID uuid.UUID, input orders.CreateOrderInput) (*orders.OrderDTO, error)
}

type service struct {
	orders orderCreator
}

// NewService constructs a checkout service.
func NewService(client orderCreator) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("order client is required")
	}
	return &service{orders: client}, nil
}

// Execute submits the cart to the order service. The cart is emptied only
// after the order service accepts the order; any failure leaves it untouched
// so the user can retry.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, store *cart.Store, address types.ShippingAddress) (*orders.OrderDTO, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable")
	}
	if !address.IsComplete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete")
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]orders.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, orders.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Image:     line.ImageURL,
		})
	}

	order, err := s.orders.Create(ctx, userID, orders.CreateOrderInput{
		Items:           items,
		TotalAmount:     store.Total(),
		ShippingAddress: address,
	})
	if err != nil {
		return nil, err
	}

	store.Clear()
	return order, nil
}
