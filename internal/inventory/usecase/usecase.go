package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/apperr"
	"github.com/vantora/vantora-order-service/internal/cache"
	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/eventbus"
	"github.com/vantora/vantora-order-service/internal/inventory"
	"github.com/vantora/vantora-order-service/internal/inventory/dto"
	"github.com/vantora/vantora-order-service/internal/model"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	txm    database.TxRunner
	cache  *cache.RedisClient
	events eventbus.Bus
	logger *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, txm database.TxRunner, cacheClient *cache.RedisClient, events eventbus.Bus, logger *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		txm:    txm,
		cache:  cacheClient,
		events: events,
		logger: logger,
	}
}

func (uc *inventoryUseCase) GetAvailability(ctx context.Context, tenantID, productID string) (*dto.AvailabilityDTO, error) {
	inv, err := uc.repo.GetByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read inventory")
	}
	if inv == nil {
		// Never stocked: zero quantities, derived out-of-stock.
		inv = &model.Inventory{TenantID: tenantID, ProductID: productID}
	}
	return toAvailability(inv), nil
}

func (uc *inventoryUseCase) Adjust(ctx context.Context, input *dto.AdjustStockInput) (*dto.AvailabilityDTO, error) {
	if input.Quantity < 0 {
		return nil, apperr.Validation("quantity must not be negative")
	}
	switch input.Mode {
	case dto.ModeAdd, dto.ModeRemove, dto.ModeSet:
	default:
		return nil, apperr.Validation("unknown adjustment mode %q", input.Mode)
	}

	unlock, err := uc.lockProduct(ctx, input.TenantID, input.ProductID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result *model.Inventory
	err = uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		// Row lock held for the rest of the transaction: a concurrent writer
		// blocks here instead of reading the same before-value.
		inv, err := uc.repo.GetByProductForUpdate(ctx, input.TenantID, input.ProductID)
		if err != nil {
			return apperr.Storage(err, "failed to read inventory")
		}
		if inv == nil {
			return apperr.NotFound("no inventory record for product %s", input.ProductID)
		}

		before := inv.QuantityOnHand
		var after int64
		switch input.Mode {
		case dto.ModeAdd:
			after = before + input.Quantity
		case dto.ModeRemove:
			// Floored: the movement records the actual decrease, not the
			// requested one. On-hand never goes negative.
			after = before - input.Quantity
			if after < 0 {
				after = 0
			}
		case dto.ModeSet:
			after = input.Quantity
		}

		now := time.Now()
		inv.QuantityOnHand = after
		inv.UpdatedAt = now

		var createdBy *string
		if input.UserID != "" {
			createdBy = &input.UserID
		}

		movement := &model.InventoryMovement{
			ID:             uuid.New().String(),
			TenantID:       input.TenantID,
			ProductID:      input.ProductID,
			MovementType:   model.MovementAdjustment,
			QuantityChange: after - before,
			QuantityBefore: before,
			QuantityAfter:  after,
			Reason:         input.Reason,
			CreatedBy:      createdBy,
			CreatedAt:      now,
		}

		if err := uc.repo.SaveWithMovement(ctx, inv, movement); err != nil {
			return apperr.Storage(err, "failed to adjust stock")
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishAdjusted(input.TenantID, input.ProductID, result.QuantityOnHand, string(input.Mode))
	return toAvailability(result), nil
}

func (uc *inventoryUseCase) Replenish(ctx context.Context, tenantID, productID string, quantity int64, referenceOrderID, reason string) error {
	if quantity < 0 {
		return apperr.Validation("quantity must not be negative")
	}

	unlock, err := uc.lockProduct(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	defer unlock()

	return uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		inv, err := uc.repo.GetByProductForUpdate(ctx, tenantID, productID)
		if err != nil {
			return apperr.Storage(err, "failed to read inventory")
		}

		now := time.Now()
		if inv == nil {
			inv = &model.Inventory{
				ID:        uuid.New().String(),
				TenantID:  tenantID,
				ProductID: productID,
			}
		}

		before := inv.QuantityOnHand
		inv.QuantityOnHand = before + quantity
		inv.UpdatedAt = now

		movement := &model.InventoryMovement{
			ID:             uuid.New().String(),
			TenantID:       tenantID,
			ProductID:      productID,
			MovementType:   model.MovementPurchase,
			QuantityChange: quantity,
			QuantityBefore: before,
			QuantityAfter:  inv.QuantityOnHand,
			Reason:         reason,
			ReferenceID:    &referenceOrderID,
			CreatedAt:      now,
		}

		if err := uc.repo.SaveWithMovement(ctx, inv, movement); err != nil {
			return apperr.Storage(err, "failed to replenish stock")
		}
		return nil
	})
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, tenantID string, page, pageSize int) ([]dto.AvailabilityDTO, int, error) {
	items, count, err := uc.repo.FindAll(ctx, &dto.InventoryFilters{
		TenantID: tenantID,
		LowStock: true,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, apperr.Storage(err, "failed to list low stock")
	}

	result := make([]dto.AvailabilityDTO, len(items))
	for i := range items {
		result[i] = *toAvailability(&items[i])
	}
	return result, count, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	items, count, err := uc.repo.ListMovements(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Storage(err, "failed to list movements")
	}
	return items, count, nil
}

// lockProduct serializes concurrent read-modify-write cycles on one
// (tenant, product) pair. The row lock taken inside the transaction is the
// correctness mechanism; this advisory lock only keeps contending writers
// from queueing on the row. Skipped when no redis client is configured.
func (uc *inventoryUseCase) lockProduct(ctx context.Context, tenantID, productID string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	lockKey := fmt.Sprintf("lock:inventory:%s:%s", tenantID, productID)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, apperr.Conflict("inventory is busy, please retry")
	}

	return func() {
		if err := uc.cache.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			uc.logger.Error("failed to release inventory lock", zap.Error(err))
		}
	}, nil
}

func (uc *inventoryUseCase) publishAdjusted(tenantID, productID string, onHand int64, mode string) {
	if uc.events == nil {
		return
	}
	uc.events.Publish(eventbus.EventStockAdjusted, map[string]interface{}{
		"tenant_id":  tenantID,
		"product_id": productID,
		"on_hand":    onHand,
		"mode":       mode,
	})
}

func toAvailability(inv *model.Inventory) *dto.AvailabilityDTO {
	return &dto.AvailabilityDTO{
		ProductID:    inv.ProductID,
		OnHand:       inv.QuantityOnHand,
		Reserved:     inv.QuantityReserved,
		Available:    inv.Available(),
		ReorderPoint: inv.ReorderPoint,
		Status:       model.DeriveStockStatus(inv.QuantityOnHand, inv.QuantityReserved, inv.ReorderPoint),
	}
}
