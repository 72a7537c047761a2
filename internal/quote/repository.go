package quote

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/quote/dto"
)

type Repository interface {
	// GetByID returns nil when the quote does not exist within the tenant.
	GetByID(ctx context.Context, tenantID, quoteID string) (*model.Quote, error)
	FindAll(ctx context.Context, filters *dto.QuoteFilters) ([]model.Quote, int, error)

	GetItems(ctx context.Context, quoteID string) ([]model.QuoteItem, error)
	GetItem(ctx context.Context, quoteID, itemID string) (*model.QuoteItem, error)

	InsertQuote(ctx context.Context, q *model.Quote) error
	InsertItems(ctx context.Context, items []model.QuoteItem) error
	UpdateItem(ctx context.Context, item *model.QuoteItem) error
	DeleteItem(ctx context.Context, itemID string) error

	UpdateTotal(ctx context.Context, quoteID string, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, quoteID string, status model.QuoteStatus) error

	// MarkConverted is the one-way, one-time link to the order the quote
	// became. Status moves to converted in the same statement.
	MarkConverted(ctx context.Context, quoteID, orderID string) error
}

// OrderWriter is the slice of the Order Engine's persistence the conversion
// path needs. The concrete implementation is the order repository; the
// interface keeps the dependency one-directional.
type OrderWriter interface {
	InsertOrder(ctx context.Context, o *model.Order) error
	InsertOrderItems(ctx context.Context, items []model.OrderItem) error
}
