package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/auth"
	"github.com/vantora/vantora-order-service/internal/httpx"
	"github.com/vantora/vantora-order-service/internal/quote"
	"github.com/vantora/vantora-order-service/internal/quote/dto"
)

type QuoteHandler struct {
	uc     quote.UseCase
	logger *zap.Logger
}

func NewQuoteHandler(uc quote.UseCase, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{uc: uc, logger: logger}
}

func (h *QuoteHandler) Register(router fiber.Router) {
	router.Post("/quotes", h.Create)
	router.Get("/quotes", h.List)
	router.Get("/quotes/:quoteId", h.Get)
	router.Post("/quotes/:quoteId/items", h.AddItem)
	router.Put("/quotes/:quoteId/items/:itemId", h.UpdateItem)
	router.Delete("/quotes/:quoteId/items/:itemId", h.RemoveItem)
	router.Put("/quotes/:quoteId/status", h.UpdateStatus)
	router.Post("/quotes/:quoteId/convert", h.ConvertToOrder)
	router.Post("/quotes/:quoteId/duplicate", h.Duplicate)
}

type quoteItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice *string `json:"unit_price"`
}

type createQuoteRequest struct {
	DistributorID string             `json:"distributor_id"`
	Notes         string             `json:"notes"`
	Items         []quoteItemRequest `json:"items"`
}

func parsePrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req createQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}

	input := &dto.CreateQuoteInput{
		TenantID:      caller.TenantID,
		DistributorID: req.DistributorID,
		Notes:         req.Notes,
		Items:         make([]dto.CreateQuoteItem, len(req.Items)),
	}
	for i, item := range req.Items {
		price, err := parsePrice(item.UnitPrice)
		if err != nil {
			return httpx.BadRequest(c, "invalid unit price")
		}
		input.Items[i] = dto.CreateQuoteItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		}
	}

	q, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Created(c, "quote created", q)
}

func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	q, err := h.uc.Get(c.Context(), caller.TenantID, c.Params("quoteId"))
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "quote retrieved", q)
}

func (h *QuoteHandler) List(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	quotes, total, err := h.uc.List(c.Context(), &dto.QuoteFilters{
		TenantID:      caller.TenantID,
		DistributorID: c.Query("distributor_id"),
		Status:        c.Query("status"),
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("page_size", 20),
	})
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "quotes retrieved", fiber.Map{
		"items": quotes,
		"total": total,
	})
}

func (h *QuoteHandler) AddItem(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req quoteItemRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		return httpx.BadRequest(c, "invalid unit price")
	}

	q, err := h.uc.AddItem(c.Context(), &dto.QuoteItemInput{
		TenantID:  caller.TenantID,
		QuoteID:   c.Params("quoteId"),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: price,
	})
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "quote item added", q)
}

func (h *QuoteHandler) UpdateItem(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req quoteItemRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		return httpx.BadRequest(c, "invalid unit price")
	}

	q, err := h.uc.UpdateItem(c.Context(), &dto.UpdateQuoteItemInput{
		TenantID:  caller.TenantID,
		QuoteID:   c.Params("quoteId"),
		ItemID:    c.Params("itemId"),
		Quantity:  req.Quantity,
		UnitPrice: price,
	})
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "quote item updated", q)
}

func (h *QuoteHandler) RemoveItem(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	q, err := h.uc.RemoveItem(c.Context(), caller.TenantID, c.Params("quoteId"), c.Params("itemId"))
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "quote item removed", q)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *QuoteHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid request body")
	}

	q, err := h.uc.UpdateStatus(c.Context(), caller.TenantID, c.Params("quoteId"), req.Status)
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Success(c, "quote status updated", q)
}

func (h *QuoteHandler) ConvertToOrder(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	result, err := h.uc.ConvertToOrder(c.Context(), caller.TenantID, c.Params("quoteId"))
	if err != nil {
		h.logger.Warn("quote conversion failed",
			zap.String("quote_id", c.Params("quoteId")), zap.Error(err))
		return httpx.Failure(c, err)
	}
	return httpx.Created(c, "quote converted to order", result)
}

func (h *QuoteHandler) Duplicate(c *fiber.Ctx) error {
	caller, err := auth.CallerFrom(c)
	if err != nil {
		return httpx.Failure(c, err)
	}

	q, err := h.uc.Duplicate(c.Context(), caller.TenantID, c.Params("quoteId"))
	if err != nil {
		return httpx.Failure(c, err)
	}
	return httpx.Created(c, "quote duplicated", q)
}
