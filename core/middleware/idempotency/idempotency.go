package idempotency

import (
	"store-inventory/core/cache"
	"store-inventory/core/logger"
	"store-inventory/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Header carries the client-chosen submission key.
const Header = "Idempotency-Key"

// New returns a middleware that refuses a repeated submission with 409 Conflict.
//
// Keys are scoped to the calling user. A submission that fails is released so the
// client can retry it with the same key. Requests without the header pass through.
func New(store cache.IdempotencyStore, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(Header)
		if key == "" {
			return c.Next()
		}
		scoped := auth.Principal(c).UserID + ":" + key
		l := logger.WithRayID(log, c)

		fresh, err := store.Claim(c.Context(), scoped)
		if err != nil {
			// Duplicate detection is best effort; an unreachable store must not block submissions.
			l.Warn("idempotency store unavailable", zap.Error(err))
			return c.Next()
		}
		if !fresh {
			l.Info("duplicate submission refused", zap.String("idempotency_key", key))
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Duplicate submission: this Idempotency-Key was already used"})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if relErr := store.Release(c.Context(), scoped); relErr != nil {
				l.Warn("failed to release idempotency key", zap.Error(relErr))
			}
		}
		return err
	}
}
