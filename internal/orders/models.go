package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              int64           `json:"order_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   *string         `json:"customer_phone"`
	ShippingAddress *string         `json:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CheckoutItem carries the client-side snapshot of a cart line. Price and
// subtotal are persisted as supplied, not recomputed from the live product.
type CheckoutItem struct {
	ProductID int64           `json:"product_id" validate:"gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CheckoutRequest struct {
	CustomerName    string          `json:"customer_name" validate:"required"`
	CustomerEmail   string          `json:"customer_email" validate:"required"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []CheckoutItem  `json:"items" validate:"required,min=1,dive"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// OrderItemDetail is the read-side join row: the persisted snapshot plus the
// product's current name for display.
type OrderItemDetail struct {
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ProductName string          `json:"product_name"`
}

type OrderWithItems struct {
	Order
	Items []OrderItemDetail `json:"items"`
}
