package snapshot

import (
	"store-inventory/core/reconcile"
	"store-inventory/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new snapshot feature. It is disabled without a storage client.
func NewFeature(engine *reconcile.Engine, client storage.Client, opts Options, logger *zap.Logger) *Feature {
	svc := NewService(engine, client, opts, logger)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: client != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "snapshot"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
