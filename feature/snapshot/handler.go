package snapshot

import (
	"fmt"

	"store-inventory/core/apperr"
	"store-inventory/core/authz"
	"store-inventory/core/logger"
	"store-inventory/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for snapshots.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the snapshot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/snapshots")
	group.Post("/", h.HandleExport)
	group.Get("/", h.HandleList)
	group.Get("/latest", h.HandleLatest)
}

// HandleExport exports a snapshot.
// @Summary Export Snapshot
// @Description Uploads catalog, requests and ledger as one JSON object and prunes old snapshots. Requires the storekeeper role.
// @Tags snapshots
// @Produce json
// @Success 201 {object} Result
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Storage error"
// @Router /snapshots [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := authz.Require(auth.Principal(c), authz.CanManageCatalog, "export_snapshot"); err != nil {
		return apperr.Respond(c, err)
	}

	res, err := h.service.Export(c.Context())
	if err != nil {
		l.Error("Snapshot export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleList lists stored snapshots.
// @Summary List Snapshots
// @Tags snapshots
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Storage error"
// @Router /snapshots [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	keys, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Snapshot listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(keys)
}

// HandleLatest downloads the newest snapshot.
// @Summary Latest Snapshot
// @Tags snapshots
// @Produce json
// @Success 200 {object} Document
// @Failure 404 {object} map[string]string "No snapshot stored"
// @Router /snapshots/latest [get]
func (h *Handler) HandleLatest(c *fiber.Ctx) error {
	key, doc, err := h.service.Latest(c.Context())
	if err != nil {
		if apperr.Kind(err) != nil {
			return apperr.Respond(c, err)
		}
		logger.WithRayID(h.service.logger, c).Error("Snapshot download failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("X-Snapshot-Key", key)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", key))
	return c.JSON(doc)
}
