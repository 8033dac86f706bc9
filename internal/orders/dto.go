package orders

import (
	"time"

	"github.com/amontes/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a purchased line as the order service records it.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// CreateOrderInput is the payload submitted to the order service at checkout.
type CreateOrderInput struct {
	Items           []OrderItem           `json:"items"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
}

// OrderDTO is an order as the order service returns it.
type OrderDTO struct {
	ID              string                `json:"id"`
	Status          string                `json:"status"`
	Items           []OrderItem           `json:"items"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time             `json:"created_at"`
}
