package withdrawal

import (
	"store-inventory/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new withdrawal feature. Guards, such as the idempotency
// middleware, run before request submission.
func NewFeature(engine *reconcile.Engine, logger *zap.Logger, guards ...fiber.Handler) *Feature {
	svc := NewService(engine, logger)
	return &Feature{service: svc, handler: NewHandler(svc, guards...)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "withdrawal"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
