package httpx

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vantora/vantora-order-service/internal/apperr"
)

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: requestID(c),
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: requestID(c),
	})
}

// Failure maps a classified error to its HTTP status. Storage errors come
// back as a generic 500 without internal detail.
func Failure(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)

	status := fiber.StatusInternalServerError
	message := err.Error()
	switch kind {
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindUnauthorized:
		status = fiber.StatusForbidden
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
	case apperr.KindConflict:
		status = fiber.StatusConflict
	case apperr.KindStorage, apperr.KindUnknown:
		message = "internal server error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error: &APIError{
			Code:    kind.String(),
			Message: message,
		},
		Timestamp: time.Now(),
		RequestID: requestID(c),
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Failure(c, apperr.Validation("%s", message))
}

func requestID(c *fiber.Ctx) string {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Set("X-Request-ID", id)
	}
	return id
}
