package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vantora/vantora-order-service/internal/apperr"
)

// Caller is the identity the upstream identity provider attaches to every
// request. Tenant scoping for all entity access starts here: repositories
// filter every query by Caller.TenantID, so there is no per-callsite check
// to forget.
type Caller struct {
	TenantID string
	UserID   string
}

const callerKey = "auth_caller"

// Middleware extracts the caller identity from the gateway-injected headers
// and rejects requests without a tenant.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := c.Get("X-Tenant-ID")
		if tenantID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing tenant identity")
		}
		c.Locals(callerKey, Caller{
			TenantID: tenantID,
			UserID:   c.Get("X-User-ID"),
		})
		return c.Next()
	}
}

func CallerFrom(c *fiber.Ctx) (Caller, error) {
	caller, ok := c.Locals(callerKey).(Caller)
	if !ok || caller.TenantID == "" {
		return Caller{}, apperr.Unauthorized("missing tenant identity")
	}
	return caller, nil
}
