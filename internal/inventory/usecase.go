package inventory

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/inventory/dto"
	"github.com/vantora/vantora-order-service/internal/model"
)

type UseCase interface {
	GetAvailability(ctx context.Context, tenantID, productID string) (*dto.AvailabilityDTO, error)
	Adjust(ctx context.Context, input *dto.AdjustStockInput) (*dto.AvailabilityDTO, error)

	// Replenish is the Order Engine's hook: add semantics with a purchase
	// movement referencing the delivered order. Creates the inventory row if
	// the product has never been stocked.
	Replenish(ctx context.Context, tenantID, productID string, quantity int64, referenceOrderID, reason string) error

	ListLowStock(ctx context.Context, tenantID string, page, pageSize int) ([]dto.AvailabilityDTO, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
