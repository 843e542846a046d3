package integrity

import (
	"errors"

	"store-inventory/core/logger"
	"store-inventory/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/conservation", h.HandleConservationCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Runs the conservation audit, the schema check and the storage check. Checks whose backend is not configured report "skipped".
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	conservation := h.service.CheckConservation()
	if !conservation.Balanced {
		l.Error("Conservation breach detected", zap.Int("unbalanced", len(conservation.Unbalanced)))
	}
	report := fiber.Map{"conservation": conservation}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = statusOf(err)
	} else {
		report["schema"] = schema
	}

	if st, err := h.service.CheckStorage(c.Context()); err != nil {
		report["storage"] = statusOf(err)
	} else {
		report["storage"] = st
	}

	if failed := h.service.JournalFailures(); failed >= 0 {
		report["journal"] = fiber.Map{"failed_writes": failed}
	} else {
		report["journal"] = fiber.Map{"status": "skipped"}
	}

	return c.JSON(report)
}

// HandleConservationCheck audits every item.
// @Summary Check Conservation
// @Description Replays each item's ledger and lists the items whose stock disagrees.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ConservationReport
// @Router /integrity/conservation [get]
func (h *Handler) HandleConservationCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckConservation())
}

// HandleSchemaCheck verifies the database schema.
// @Summary Check Database Schema
// @Description Verifies that the inventory tables and columns exist.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport
// @Failure 503 {object} map[string]string "No database configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema()
	if err != nil {
		return h.fail(c, "Schema check failed", err)
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the snapshot bucket.
// @Summary Check Storage
// @Description Checks that the snapshot bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.StorageReport
// @Failure 503 {object} map[string]string "No object storage configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix")

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		return h.fail(c, "Storage check failed", err)
	}

	if !report.Exists && fix {
		l.Info("Creating missing snapshot bucket", zap.String("bucket", report.Bucket))
		if err := h.service.FixStorage(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "bucket": report.Bucket})
	}

	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, ErrNoDatabase) || errors.Is(err, ErrNoStorage) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func statusOf(err error) fiber.Map {
	if errors.Is(err, ErrNoDatabase) || errors.Is(err, ErrNoStorage) {
		return fiber.Map{"status": "skipped", "reason": err.Error()}
	}
	return fiber.Map{"status": "error", "error": err.Error()}
}

// Keeps the report types referenced for swagger generation.
var _ = checks.SchemaReport{}
