package order

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/order/dto"
)

type UseCase interface {
	// CreateFromCart freezes the user's cart into an order at current
	// product prices and clears the cart, all in one transaction. An empty
	// cart is a validation failure with zero writes.
	CreateFromCart(ctx context.Context, input *dto.CreateFromCartInput) (*dto.OrderDTO, error)

	Get(ctx context.Context, tenantID, orderID string) (*dto.OrderDTO, error)
	List(ctx context.Context, filters *dto.OrderFilters) ([]dto.OrderDTO, int, error)

	// UpdateStatus writes the new status. Transitioning into delivered
	// replenishes stock for every order item, exactly once.
	UpdateStatus(ctx context.Context, tenantID, orderID string, status string) (*dto.OrderDTO, error)

	// Cancel refuses shipped and delivered orders. Cancellation has no
	// inventory side effects.
	Cancel(ctx context.Context, tenantID, orderID string) (*dto.OrderDTO, error)
}
