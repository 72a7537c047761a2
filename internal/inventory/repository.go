package inventory

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/inventory/dto"
	"github.com/vantora/vantora-order-service/internal/model"
)

type Repository interface {
	// GetByProduct returns nil when no inventory row exists for the pair.
	GetByProduct(ctx context.Context, tenantID, productID string) (*model.Inventory, error)

	// GetByProductForUpdate is GetByProduct with a row lock on the ambient
	// transaction. Every read-modify-write cycle must go through it so
	// concurrent writers serialize at the store instead of overwriting each
	// other.
	GetByProductForUpdate(ctx context.Context, tenantID, productID string) (*model.Inventory, error)

	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)

	// SaveWithMovement applies the movement's quantity delta to the on-hand
	// quantity and appends the ledger entry. The delta is applied relative to
	// the stored value, so a writer racing on row creation adds to the
	// committed quantity instead of clobbering it; inv and movement are
	// updated in place with the authoritative quantities. The two writes are
	// inseparable: both run on the ambient transaction, so a failure of
	// either rolls back both.
	SaveWithMovement(ctx context.Context, inv *model.Inventory, movement *model.InventoryMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
