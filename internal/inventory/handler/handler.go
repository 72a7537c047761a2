package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/auth"
	"github.com/vantora/vantora-order-service/internal/httpx"
	"github.com/vantora/vantora-order-service/internal/inventory"
	"github.com/vantora/vantora-order-service/internal/inventory/dto"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger *zap.Logger
}

func NewInventoryHandler(uc inventory.UseCase, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: logger}
}

func (h *InventoryHandler) Register(router fiber.Router) {
	router.Get("/inventory/low-stock", h.ListLowStock)
	router.Get("/inventory/movements", h.ListMovements)
	router.Get("/inventory/:productId", h.GetAvailability)
	router.Post("/inventory/:productId/adjust", h.Adjust)
}

func (h *InventoryHandler) GetAvailability(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	availability, err := h.uc.GetAvailability(c.Context(), caller.TenantID, c.Params("productId"))
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "availability retrieved", availability)
}

type adjustRequest struct {
	Quantity int64  `json:"quantity"`
	Mode     string `json:"mode"`
	Reason   string `json:"reason"`
}

func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}

	availability, err := h.uc.Adjust(c.Context(), &dto.AdjustStockInput{
		TenantID:  caller.TenantID,
		ProductID: c.Params("productId"),
		Quantity:  req.Quantity,
		Mode:      dto.AdjustMode(req.Mode),
		Reason:    req.Reason,
		UserID:    caller.UserID,
	})
	if err != nil {
		h.logger.Warn("stock adjustment failed",
			zap.String("product_id", c.Params("productId")), zap.Error(err))
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "stock adjusted", availability)
}

func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	items, total, err := h.uc.ListLowStock(c.Context(), caller.TenantID,
		c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "low stock items retrieved", fiber.Map{
		"items": items,
		"total": total,
	})
}

func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	movements, total, err := h.uc.ListMovements(c.Context(), &dto.MovementFilters{
		TenantID:     caller.TenantID,
		ProductID:    c.Query("product_id"),
		MovementType: c.Query("movement_type"),
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("page_size", 20),
	})
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "movements retrieved", fiber.Map{
		"items": movements,
		"total": total,
	})
}
