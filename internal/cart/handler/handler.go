package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/auth"
	"github.com/vantora/vantora-order-service/internal/cart"
	"github.com/vantora/vantora-order-service/internal/cart/dto"
	"github.com/vantora/vantora-order-service/internal/httpx"
)

type CartHandler struct {
	uc     cart.UseCase
	logger *zap.Logger
}

func NewCartHandler(uc cart.UseCase, logger *zap.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

func (h *CartHandler) Register(router fiber.Router) {
	router.Get("/cart", h.Snapshot)
	router.Post("/cart/items", h.AddItem)
	router.Put("/cart/items/:itemId", h.SetQuantity)
	router.Delete("/cart/items/:itemId", h.Remove)
	router.Delete("/cart", h.Clear)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.uc.AddItem(c.Context(), &dto.AddItemInput{
		TenantID:  caller.TenantID,
		UserID:    caller.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Created(c, "item added to cart", item)
}

type setQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}

	item, err := h.uc.SetQuantity(c.Context(), caller.TenantID, caller.UserID, c.Params("itemId"), req.Quantity)
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "cart item updated", item)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	if err := h.uc.Remove(c.Context(), caller.UserID, c.Params("itemId")); err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "cart item removed", nil)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	if err := h.uc.Clear(c.Context(), caller.UserID); err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "cart cleared", nil)
}

func (h *CartHandler) Snapshot(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	snapshot, err := h.uc.Snapshot(c.Context(), caller.TenantID, caller.UserID)
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "cart retrieved", snapshot)
}
