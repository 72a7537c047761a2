package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/apperr"
	"github.com/vantora/vantora-order-service/internal/cart"
	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/eventbus"
	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/numbering"
	"github.com/vantora/vantora-order-service/internal/order"
	"github.com/vantora/vantora-order-service/internal/order/dto"
	"github.com/vantora/vantora-order-service/internal/product"
)

type orderUseCase struct {
	repo     order.Repository
	carts    cart.Repository
	products product.Repository
	stock    order.StockLedger
	numbers  numbering.Allocator
	txm      database.TxRunner
	events   eventbus.Bus
	logger   *zap.Logger
}

func NewOrderUseCase(
	repo order.Repository,
	carts cart.Repository,
	products product.Repository,
	stock order.StockLedger,
	numbers numbering.Allocator,
	txm database.TxRunner,
	events eventbus.Bus,
	logger *zap.Logger,
) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		carts:    carts,
		products: products,
		stock:    stock,
		numbers:  numbers,
		txm:      txm,
		events:   events,
		logger:   logger,
	}
}

func (uc *orderUseCase) CreateFromCart(ctx context.Context, input *dto.CreateFromCartInput) (*dto.OrderDTO, error) {
	if input.DistributorID == "" {
		return nil, apperr.Validation("distributor is required")
	}

	var created *model.Order
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		cartItems, err := uc.carts.FindByUser(ctx, input.UserID)
		if err != nil {
			return apperr.Storage(err, "failed to read cart")
		}
		if len(cartItems) == 0 {
			return apperr.Validation("cart is empty")
		}

		productIDs := make([]string, len(cartItems))
		for i, item := range cartItems {
			productIDs[i] = item.ProductID
		}
		products, err := uc.products.FindByIDs(ctx, input.TenantID, productIDs)
		if err != nil {
			return apperr.Storage(err, "failed to look up products")
		}

		number, err := uc.numbers.Next(ctx, numbering.PrefixOrder)
		if err != nil {
			return apperr.Storage(err, "failed to allocate order number")
		}

		now := time.Now()
		o := &model.Order{
			BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			TenantID:      input.TenantID,
			DistributorID: input.DistributorID,
			OrderNumber:   number,
			Status:        model.OrderStatusPending,
		}
		if input.Notes != "" {
			o.Notes = &input.Notes
		}

		// Prices freeze here: the order item snapshots the product's price
		// at this instant and never tracks it again.
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		totals := make([]decimal.Decimal, 0, len(cartItems))
		for _, ci := range cartItems {
			p, ok := products[ci.ProductID]
			if !ok {
				return apperr.NotFound("product %s not found", ci.ProductID)
			}
			item := model.OrderItem{
				BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
				OrderID:    o.ID,
				ProductID:  ci.ProductID,
				Quantity:   ci.Quantity,
				UnitPrice:  p.Price,
				TotalPrice: model.LineTotal(p.Price, ci.Quantity),
			}
			orderItems = append(orderItems, item)
			totals = append(totals, item.TotalPrice)
		}
		o.Total = model.SumLineTotals(totals)
		o.Items = orderItems

		if err := uc.repo.InsertOrder(ctx, o); err != nil {
			return apperr.Storage(err, "failed to create order")
		}
		if err := uc.repo.InsertOrderItems(ctx, orderItems); err != nil {
			return apperr.Storage(err, "failed to create order items")
		}
		if err := uc.carts.DeleteByUser(ctx, input.UserID); err != nil {
			return apperr.Storage(err, "failed to clear cart")
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishStatusChanged(created)
	return dto.FromOrder(created), nil
}

func (uc *orderUseCase) Get(ctx context.Context, tenantID, orderID string) (*dto.OrderDTO, error) {
	o, err := uc.loadWithItems(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return dto.FromOrder(o), nil
}

func (uc *orderUseCase) List(ctx context.Context, filters *dto.OrderFilters) ([]dto.OrderDTO, int, error) {
	orders, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Storage(err, "failed to list orders")
	}
	result := make([]dto.OrderDTO, len(orders))
	for i := range orders {
		result[i] = *dto.FromOrder(&orders[i])
	}
	return result, count, nil
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, tenantID, orderID string, status string) (*dto.OrderDTO, error) {
	newStatus := model.OrderStatus(status)
	if !newStatus.Valid() {
		return nil, apperr.Validation("unknown order status %q", status)
	}
	if newStatus == model.OrderStatusCancelled {
		return nil, apperr.Validation("use the cancel operation to cancel an order")
	}

	var updated *model.Order
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.loadWithItems(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		previous := o.Status

		if err := uc.repo.UpdateStatus(ctx, o.ID, newStatus); err != nil {
			return apperr.Storage(err, "failed to update order status")
		}
		o.Status = newStatus

		// Delivery receives the ordered stock into inventory. Guarded on
		// the transition so re-asserting delivered cannot double-count.
		if newStatus == model.OrderStatusDelivered && previous != model.OrderStatusDelivered {
			reason := fmt.Sprintf("Order %s delivered", o.OrderNumber)
			for _, item := range o.Items {
				if err := uc.stock.Replenish(ctx, o.TenantID, item.ProductID, item.Quantity, o.ID, reason); err != nil {
					return err
				}
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishStatusChanged(updated)
	return dto.FromOrder(updated), nil
}

func (uc *orderUseCase) Cancel(ctx context.Context, tenantID, orderID string) (*dto.OrderDTO, error) {
	var cancelled *model.Order
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.loadWithItems(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !o.Status.CanCancel() {
			return apperr.Conflict("cannot cancel a %s order", o.Status)
		}

		if err := uc.repo.UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			return apperr.Storage(err, "failed to cancel order")
		}
		o.Status = model.OrderStatusCancelled
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishStatusChanged(cancelled)
	return dto.FromOrder(cancelled), nil
}

func (uc *orderUseCase) loadWithItems(ctx context.Context, tenantID, orderID string) (*model.Order, error) {
	o, err := uc.repo.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read order")
	}
	if o == nil {
		return nil, apperr.NotFound("order %s not found", orderID)
	}
	items, err := uc.repo.GetItems(ctx, o.ID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to read order items")
	}
	o.Items = items
	return o, nil
}

func (uc *orderUseCase) publishStatusChanged(o *model.Order) {
	if uc.events == nil || o == nil {
		return
	}
	uc.events.Publish(eventbus.EventOrderStatusChanged, map[string]interface{}{
		"tenant_id":    o.TenantID,
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"status":       string(o.Status),
	})
}
