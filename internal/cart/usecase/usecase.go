package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/apperr"
	"github.com/vantora/vantora-order-service/internal/cart"
	"github.com/vantora/vantora-order-service/internal/cart/dto"
	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/product"
)

type cartUseCase struct {
	repo     cart.Repository
	products product.Repository
	logger   *zap.Logger
}

func NewCartUseCase(repo cart.Repository, products product.Repository, logger *zap.Logger) cart.UseCase {
	return &cartUseCase{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

func (uc *cartUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.CartItemDTO, error) {
	if input.Quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	p, err := uc.products.FindByID(ctx, input.TenantID, input.ProductID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to look up product")
	}
	if p == nil {
		return nil, apperr.NotFound("product %s not found", input.ProductID)
	}

	existing, err := uc.repo.GetByUserAndProduct(ctx, input.UserID, input.ProductID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read cart")
	}

	if existing != nil {
		newQty := existing.Quantity + input.Quantity
		if err := uc.repo.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			return nil, apperr.Storage(err, "failed to update cart item")
		}
		existing.Quantity = newQty
		return toItemDTO(existing, p), nil
	}

	now := time.Now()
	item := &model.CartItem{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Insert(ctx, item); err != nil {
		return nil, apperr.Storage(err, "failed to add cart item")
	}
	return toItemDTO(item, p), nil
}

func (uc *cartUseCase) SetQuantity(ctx context.Context, tenantID, userID, itemID string, quantity int64) (*dto.CartItemDTO, error) {
	if quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	item, err := uc.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, apperr.Storage(err, "failed to update cart item")
	}
	item.Quantity = quantity

	p, err := uc.products.FindByID(ctx, tenantID, item.ProductID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to look up product")
	}
	return toItemDTO(item, p), nil
}

func (uc *cartUseCase) Remove(ctx context.Context, userID, itemID string) error {
	item, err := uc.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, item.ID); err != nil {
		return apperr.Storage(err, "failed to remove cart item")
	}
	return nil
}

func (uc *cartUseCase) Clear(ctx context.Context, userID string) error {
	if err := uc.repo.DeleteByUser(ctx, userID); err != nil {
		return apperr.Storage(err, "failed to clear cart")
	}
	return nil
}

func (uc *cartUseCase) Snapshot(ctx context.Context, tenantID, userID string) (*dto.CartSnapshotDTO, error) {
	items, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read cart")
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	products, err := uc.products.FindByIDs(ctx, tenantID, productIDs)
	if err != nil {
		return nil, apperr.Storage(err, "failed to look up products")
	}

	snapshot := &dto.CartSnapshotDTO{Items: make([]dto.CartItemDTO, 0, len(items))}
	total := decimal.Zero
	for i := range items {
		p, ok := products[items[i].ProductID]
		if !ok {
			// Product removed from the catalog since it was added; the line
			// is unpriceable and skipped from the estimate.
			uc.logger.Warn("cart references missing product",
				zap.String("product_id", items[i].ProductID))
			continue
		}
		lineTotal := model.LineTotal(p.Price, items[i].Quantity)
		total = total.Add(lineTotal)
		snapshot.Items = append(snapshot.Items, *toItemDTO(&items[i], &p))
	}
	snapshot.EstimatedTotal = total.Round(2).StringFixed(2)
	return snapshot, nil
}

func (uc *cartUseCase) ownedItem(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	item, err := uc.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read cart item")
	}
	if item == nil {
		return nil, apperr.NotFound("cart item %s not found", itemID)
	}
	if item.UserID != userID {
		return nil, apperr.Unauthorized("cart item does not belong to caller")
	}
	return item, nil
}

func toItemDTO(item *model.CartItem, p *model.Product) *dto.CartItemDTO {
	out := &dto.CartItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if p != nil {
		out.ProductName = p.Name
		out.SKU = p.SKU
		out.UnitPrice = p.Price.StringFixed(2)
		out.LineTotal = model.LineTotal(p.Price, item.Quantity).StringFixed(2)
	}
	return out
}
