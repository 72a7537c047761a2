package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/auth"
	"github.com/vantora/vantora-order-service/internal/httpx"
	"github.com/vantora/vantora-order-service/internal/order"
	"github.com/vantora/vantora-order-service/internal/order/dto"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

func (h *OrderHandler) Register(router fiber.Router) {
	router.Post("/orders/from-cart", h.CreateFromCart)
	router.Get("/orders", h.List)
	router.Get("/orders/:orderId", h.Get)
	router.Put("/orders/:orderId/status", h.UpdateStatus)
	router.Post("/orders/:orderId/cancel", h.Cancel)
}

type createFromCartRequest struct {
	DistributorID string `json:"distributor_id"`
	Notes         string `json:"notes"`
}

func (h *OrderHandler) CreateFromCart(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req createFromCartRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}

	o, err := h.uc.CreateFromCart(c.Context(), &dto.CreateFromCartInput{
		TenantID:      caller.TenantID,
		UserID:        caller.UserID,
		DistributorID: req.DistributorID,
		Notes:         req.Notes,
	})
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Created(c, "order created", o)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	o, err := h.uc.Get(c.Context(), caller.TenantID, c.Params("orderId"))
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "order retrieved", o)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	orders, total, err := h.uc.List(c.Context(), &dto.OrderFilters{
		TenantID:      caller.TenantID,
		DistributorID: c.Query("distributor_id"),
		Status:        c.Query("status"),
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("page_size", 20),
	})
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "orders retrieved", fiber.Map{
		"items": orders,
		"total": total,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}

	o, err := h.uc.UpdateStatus(c.Context(), caller.TenantID, c.Params("orderId"), req.Status)
	if err != nil {
		h.logger.Warn("order status update failed",
			zap.String("order_id", c.Params("orderId")), zap.Error(err))
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "order status updated", o)
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	o, err := h.uc.Cancel(c.Context(), caller.TenantID, c.Params("orderId"))
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "order cancelled", o)
}
