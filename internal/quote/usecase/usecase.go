package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/apperr"
	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/eventbus"
	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/numbering"
	"github.com/vantora/vantora-order-service/internal/product"
	"github.com/vantora/vantora-order-service/internal/quote"
	"github.com/vantora/vantora-order-service/internal/quote/dto"
)

type quoteUseCase struct {
	repo               quote.Repository
	orders             quote.OrderWriter
	products           product.Repository
	numbers            numbering.Allocator
	txm                database.TxRunner
	events             eventbus.Bus
	logger             *zap.Logger
	enforceTransitions bool
}

func NewQuoteUseCase(
	repo quote.Repository,
	orders quote.OrderWriter,
	products product.Repository,
	numbers numbering.Allocator,
	txm database.TxRunner,
	events eventbus.Bus,
	logger *zap.Logger,
	enforceTransitions bool,
) quote.UseCase {
	return &quoteUseCase{
		repo:               repo,
		orders:             orders,
		products:           products,
		numbers:            numbers,
		txm:                txm,
		events:             events,
		logger:             logger,
		enforceTransitions: enforceTransitions,
	}
}

func (uc *quoteUseCase) Create(ctx context.Context, input *dto.CreateQuoteInput) (*dto.QuoteDTO, error) {
	if input.DistributorID == "" {
		return nil, apperr.Validation("distributor is required")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperr.Validation("item quantity must be at least 1")
		}
	}

	var created *model.Quote
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		number, err := uc.numbers.Next(ctx, numbering.PrefixQuote)
		if err != nil {
			return apperr.Storage(err, "failed to allocate quote number")
		}

		now := time.Now()
		q := &model.Quote{
			BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			TenantID:      input.TenantID,
			DistributorID: input.DistributorID,
			QuoteNumber:   number,
			Status:        model.QuoteStatusDraft,
		}
		if input.Notes != "" {
			q.Notes = &input.Notes
		}

		items := make([]model.QuoteItem, 0, len(input.Items))
		totals := make([]decimal.Decimal, 0, len(input.Items))
		for _, in := range input.Items {
			unitPrice, err := uc.resolveUnitPrice(ctx, input.TenantID, in.ProductID, in.UnitPrice)
			if err != nil {
				return err
			}
			item := model.QuoteItem{
				BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
				QuoteID:    q.ID,
				ProductID:  in.ProductID,
				Quantity:   in.Quantity,
				UnitPrice:  unitPrice,
				TotalPrice: model.LineTotal(unitPrice, in.Quantity),
			}
			items = append(items, item)
			totals = append(totals, item.TotalPrice)
		}
		q.Total = model.SumLineTotals(totals)
		q.Items = items

		if err := uc.repo.InsertQuote(ctx, q); err != nil {
			return apperr.Storage(err, "failed to create quote")
		}
		if err := uc.repo.InsertItems(ctx, items); err != nil {
			return apperr.Storage(err, "failed to create quote items")
		}
		created = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromQuote(created), nil
}

func (uc *quoteUseCase) Get(ctx context.Context, tenantID, quoteID string) (*dto.QuoteDTO, error) {
	q, err := uc.loadWithItems(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	return dto.FromQuote(q), nil
}

func (uc *quoteUseCase) List(ctx context.Context, filters *dto.QuoteFilters) ([]dto.QuoteDTO, int, error) {
	quotes, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Storage(err, "failed to list quotes")
	}
	result := make([]dto.QuoteDTO, len(quotes))
	for i := range quotes {
		result[i] = *dto.FromQuote(&quotes[i])
	}
	return result, count, nil
}

func (uc *quoteUseCase) AddItem(ctx context.Context, input *dto.QuoteItemInput) (*dto.QuoteDTO, error) {
	if input.Quantity < 1 {
		return nil, apperr.Validation("item quantity must be at least 1")
	}

	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		q, err := uc.editableQuote(ctx, input.TenantID, input.QuoteID)
		if err != nil {
			return err
		}

		unitPrice, err := uc.resolveUnitPrice(ctx, input.TenantID, input.ProductID, input.UnitPrice)
		if err != nil {
			return err
		}

		now := time.Now()
		item := model.QuoteItem{
			BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			QuoteID:    q.ID,
			ProductID:  input.ProductID,
			Quantity:   input.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: model.LineTotal(unitPrice, input.Quantity),
		}
		if err := uc.repo.InsertItems(ctx, []model.QuoteItem{item}); err != nil {
			return apperr.Storage(err, "failed to add quote item")
		}
		return uc.recomputeTotal(ctx, q.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, input.TenantID, input.QuoteID)
}

func (uc *quoteUseCase) UpdateItem(ctx context.Context, input *dto.UpdateQuoteItemInput) (*dto.QuoteDTO, error) {
	if input.Quantity < 1 {
		return nil, apperr.Validation("item quantity must be at least 1")
	}

	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		q, err := uc.editableQuote(ctx, input.TenantID, input.QuoteID)
		if err != nil {
			return err
		}

		item, err := uc.repo.GetItem(ctx, q.ID, input.ItemID)
		if err != nil {
			return apperr.Storage(err, "failed to read quote item")
		}
		if item == nil {
			return apperr.NotFound("quote item %s not found", input.ItemID)
		}

		item.Quantity = input.Quantity
		if input.UnitPrice != nil {
			item.UnitPrice = *input.UnitPrice
		}
		item.TotalPrice = model.LineTotal(item.UnitPrice, item.Quantity)
		item.UpdatedAt = time.Now()

		if err := uc.repo.UpdateItem(ctx, item); err != nil {
			return apperr.Storage(err, "failed to update quote item")
		}
		return uc.recomputeTotal(ctx, q.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, input.TenantID, input.QuoteID)
}

func (uc *quoteUseCase) RemoveItem(ctx context.Context, tenantID, quoteID, itemID string) (*dto.QuoteDTO, error) {
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		q, err := uc.editableQuote(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}

		item, err := uc.repo.GetItem(ctx, q.ID, itemID)
		if err != nil {
			return apperr.Storage(err, "failed to read quote item")
		}
		if item == nil {
			return apperr.NotFound("quote item %s not found", itemID)
		}

		if err := uc.repo.DeleteItem(ctx, item.ID); err != nil {
			return apperr.Storage(err, "failed to remove quote item")
		}
		return uc.recomputeTotal(ctx, q.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, tenantID, quoteID)
}

func (uc *quoteUseCase) UpdateStatus(ctx context.Context, tenantID, quoteID string, status string) (*dto.QuoteDTO, error) {
	newStatus := model.QuoteStatus(status)
	if !newStatus.Valid() {
		return nil, apperr.Validation("unknown quote status %q", status)
	}

	q, err := uc.requireQuote(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}

	if uc.enforceTransitions && !model.QuoteTransitionAllowed(q.Status, newStatus) {
		return nil, apperr.Conflict("cannot move quote from %s to %s", q.Status, newStatus)
	}

	if err := uc.repo.UpdateStatus(ctx, q.ID, newStatus); err != nil {
		return nil, apperr.Storage(err, "failed to update quote status")
	}
	return uc.Get(ctx, tenantID, quoteID)
}

func (uc *quoteUseCase) ConvertToOrder(ctx context.Context, tenantID, quoteID string) (*dto.ConversionResultDTO, error) {
	var (
		convertedQuote *model.Quote
		order          *model.Order
	)

	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		q, err := uc.loadWithItems(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}
		if q.Status != model.QuoteStatusAccepted {
			return apperr.Conflict("only accepted quotes can be converted; quote is %s", q.Status)
		}

		number, err := uc.numbers.Next(ctx, numbering.PrefixOrder)
		if err != nil {
			return apperr.Storage(err, "failed to allocate order number")
		}

		now := time.Now()
		order = &model.Order{
			BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			TenantID:      q.TenantID,
			DistributorID: q.DistributorID,
			OrderNumber:   number,
			Status:        model.OrderStatusPending,
			Total:         q.Total,
			Notes:         q.Notes,
		}

		// Field-for-field copy of the quote items: fresh IDs, same
		// quantity, unit price and line total.
		orderItems := make([]model.OrderItem, len(q.Items))
		for i, item := range q.Items {
			orderItems[i] = model.OrderItem{
				BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
				OrderID:    order.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
			}
		}
		order.Items = orderItems

		if err := uc.orders.InsertOrder(ctx, order); err != nil {
			return apperr.Storage(err, "failed to create order from quote")
		}
		if err := uc.orders.InsertOrderItems(ctx, orderItems); err != nil {
			return apperr.Storage(err, "failed to copy quote items")
		}
		if err := uc.repo.MarkConverted(ctx, q.ID, order.ID); err != nil {
			return apperr.Storage(err, "failed to mark quote converted")
		}

		q.Status = model.QuoteStatusConverted
		q.ConvertedToOrderID = &order.ID
		convertedQuote = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		uc.events.Publish(eventbus.EventQuoteConverted, map[string]interface{}{
			"tenant_id":    tenantID,
			"quote_id":     convertedQuote.ID,
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		})
	}

	return &dto.ConversionResultDTO{
		Quote:       *dto.FromQuote(convertedQuote),
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OrderTotal:  order.Total.StringFixed(2),
	}, nil
}

func (uc *quoteUseCase) Duplicate(ctx context.Context, tenantID, quoteID string) (*dto.QuoteDTO, error) {
	var dup *model.Quote
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		src, err := uc.loadWithItems(ctx, tenantID, quoteID)
		if err != nil {
			return err
		}

		number, err := uc.numbers.Next(ctx, numbering.PrefixQuote)
		if err != nil {
			return apperr.Storage(err, "failed to allocate quote number")
		}

		now := time.Now()
		q := &model.Quote{
			BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			TenantID:      src.TenantID,
			DistributorID: src.DistributorID,
			QuoteNumber:   number,
			Status:        model.QuoteStatusDraft,
			Total:         src.Total,
			Notes:         src.Notes,
		}

		items := make([]model.QuoteItem, len(src.Items))
		for i, item := range src.Items {
			items[i] = model.QuoteItem{
				BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
				QuoteID:    q.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
			}
		}
		q.Items = items

		if err := uc.repo.InsertQuote(ctx, q); err != nil {
			return apperr.Storage(err, "failed to duplicate quote")
		}
		if err := uc.repo.InsertItems(ctx, items); err != nil {
			return apperr.Storage(err, "failed to duplicate quote items")
		}
		dup = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromQuote(dup), nil
}

// recomputeTotal re-sums every persisted item total and writes the aggregate
// back. Correctness by recomputation: no incremental bookkeeping to drift.
func (uc *quoteUseCase) recomputeTotal(ctx context.Context, quoteID string) error {
	items, err := uc.repo.GetItems(ctx, quoteID)
	if err != nil {
		return apperr.Storage(err, "failed to re-read quote items")
	}
	totals := make([]decimal.Decimal, len(items))
	for i, item := range items {
		totals[i] = item.TotalPrice
	}
	if err := uc.repo.UpdateTotal(ctx, quoteID, model.SumLineTotals(totals)); err != nil {
		return apperr.Storage(err, "failed to write quote total")
	}
	return nil
}

func (uc *quoteUseCase) requireQuote(ctx context.Context, tenantID, quoteID string) (*model.Quote, error) {
	q, err := uc.repo.GetByID(ctx, tenantID, quoteID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read quote")
	}
	if q == nil {
		return nil, apperr.NotFound("quote %s not found", quoteID)
	}
	return q, nil
}

func (uc *quoteUseCase) editableQuote(ctx context.Context, tenantID, quoteID string) (*model.Quote, error) {
	q, err := uc.requireQuote(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	if !q.Status.Editable() {
		return nil, apperr.Conflict("quote in status %s cannot be modified", q.Status)
	}
	return q, nil
}

func (uc *quoteUseCase) loadWithItems(ctx context.Context, tenantID, quoteID string) (*model.Quote, error) {
	q, err := uc.requireQuote(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	items, err := uc.repo.GetItems(ctx, q.ID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read quote items")
	}
	q.Items = items
	return q, nil
}

// resolveUnitPrice verifies the product belongs to the caller's tenant and
// returns its price, or the override when one is given. The lookup runs even
// with an override: the override replaces the price, never the tenant check.
func (uc *quoteUseCase) resolveUnitPrice(ctx context.Context, tenantID, productID string, override *decimal.Decimal) (decimal.Decimal, error) {
	p, err := uc.products.FindByID(ctx, tenantID, productID)
	if err != nil {
		return decimal.Zero, apperr.Storage(err, "failed to look up product")
	}
	if p == nil {
		return decimal.Zero, apperr.NotFound("product %s not found", productID)
	}

	if override != nil {
		if override.IsNegative() {
			return decimal.Zero, apperr.Validation("unit price must not be negative")
		}
		return *override, nil
	}
	return p.Price, nil
}
