package product

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/model"
)

// Repository is the read side of the externally-owned product catalog.
// Every lookup is tenant-scoped; a product belonging to another tenant is
// indistinguishable from one that does not exist.
type Repository interface {
	FindByID(ctx context.Context, tenantID, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, tenantID string, ids []string) (map[string]model.Product, error)
}
