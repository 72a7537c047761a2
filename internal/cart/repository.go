package cart

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/model"
)

type Repository interface {
	// GetByUserAndProduct returns nil when the user has no line for the product.
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*model.CartItem, error)
	GetByID(ctx context.Context, itemID string) (*model.CartItem, error)
	FindByUser(ctx context.Context, userID string) ([]model.CartItem, error)

	Insert(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int64) error
	Delete(ctx context.Context, itemID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
