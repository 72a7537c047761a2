package quote

import (
	"context"

	"github.com/vantora/vantora-order-service/internal/quote/dto"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateQuoteInput) (*dto.QuoteDTO, error)
	Get(ctx context.Context, tenantID, quoteID string) (*dto.QuoteDTO, error)
	List(ctx context.Context, filters *dto.QuoteFilters) ([]dto.QuoteDTO, int, error)

	AddItem(ctx context.Context, input *dto.QuoteItemInput) (*dto.QuoteDTO, error)
	UpdateItem(ctx context.Context, input *dto.UpdateQuoteItemInput) (*dto.QuoteDTO, error)
	RemoveItem(ctx context.Context, tenantID, quoteID, itemID string) (*dto.QuoteDTO, error)

	UpdateStatus(ctx context.Context, tenantID, quoteID string, status string) (*dto.QuoteDTO, error)
	ConvertToOrder(ctx context.Context, tenantID, quoteID string) (*dto.ConversionResultDTO, error)
	Duplicate(ctx context.Context, tenantID, quoteID string) (*dto.QuoteDTO, error)
}
