package auth

import (
	"crypto/subtle"

	"store-inventory/core/authz"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	HeaderAPIKey   = "X-API-Key"
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	principalKey = "principal"
)

// Config configures the auth middleware.
type Config struct {
	// ApiKey is required on every request. Empty disables the check.
	ApiKey string
}

// New returns a middleware that checks the API key and records the caller's identity.
//
// Identity comes from the X-User-ID and X-User-Role headers set by the upstream
// gateway. Whether the caller may perform an operation is decided by the engine.
// Both values are copied out of the request buffer since the engine keeps them.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey != "" {
			key := c.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
			}
		}

		c.Locals(principalKey, authz.Principal{
			UserID: utils.CopyString(c.Get(HeaderUserID)),
			Role:   authz.Role(utils.CopyString(c.Get(HeaderUserRole))),
		})
		return c.Next()
	}
}

// Principal returns the caller recorded by New, or the zero principal.
func Principal(c *fiber.Ctx) authz.Principal {
	p, _ := c.Locals(principalKey).(authz.Principal)
	return p
}
