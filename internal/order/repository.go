package order

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/order/dto"
)

type Repository interface {
	// GetByID returns nil when the order does not exist within the tenant.
	GetByID(ctx context.Context, tenantID, orderID string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	GetItems(ctx context.Context, orderID string) ([]model.OrderItem, error)

	InsertOrder(ctx context.Context, o *model.Order) error
	InsertOrderItems(ctx context.Context, items []model.OrderItem) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// StockLedger is the Stock Ledger capability the delivery transition needs.
// Implemented by the inventory usecase.
type StockLedger interface {
	Replenish(ctx context.Context, tenantID, productID string, quantity int64, referenceOrderID, reason string) error
}
