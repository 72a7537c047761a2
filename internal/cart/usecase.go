package cart

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/cart/dto"
)

type UseCase interface {
	// AddItem upserts: an existing (user, product) line has its quantity
	// incremented. Availability is deliberately not checked here; it is
	// enforced at checkout, not at add time.
	AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.CartItemDTO, error)
	SetQuantity(ctx context.Context, tenantID, userID, itemID string, quantity int64) (*dto.CartItemDTO, error)
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error

	// Snapshot prices lines at the product's current price. Cart totals are
	// estimates; prices freeze only when the cart becomes an order.
	Snapshot(ctx context.Context, tenantID, userID string) (*dto.CartSnapshotDTO, error)
}
