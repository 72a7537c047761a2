package model

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "draft"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPending, OrderStatusConfirmed,
		OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether an order in this status may still be cancelled.
// Shipped and delivered orders are past the point of no return.
func (s OrderStatus) CanCancel() bool {
	return s != OrderStatusShipped && s != OrderStatusDelivered
}

type Order struct {
	BaseModel
	TenantID      string          `db:"tenant_id"`
	DistributorID string          `db:"distributor_id"`
	OrderNumber   string          `db:"order_number"`
	Status        OrderStatus     `db:"status"`
	Total         decimal.Decimal `db:"total"`
	Notes         *string         `db:"notes"`
	Items         []OrderItem     `db:"-"`
}

// OrderItem is an immutable snapshot frozen at order creation. Unit price is
// never recomputed from the live product price.
type OrderItem struct {
	BaseModel
	OrderID    string          `db:"order_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int64           `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price"`
}
