package inventory

import (
	"strings"

	"store-inventory/core/apperr"
	"store-inventory/core/catalog"
	"store-inventory/core/logger"
	"store-inventory/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleAdd)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleRemove)
	group.Post("/:id/checkin", h.HandleCheckIn)
}

// CheckInBody is the payload of a manual stock adjustment.
type CheckInBody struct {
	Quantity int    `json:"quantity"`
	Remarks  string `json:"remarks"`
}

// HandleList returns every catalog item.
// @Summary List Catalog
// @Description Returns every item with its current stock, in insertion order.
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.Item
// @Router /catalog [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleGet returns one item.
// @Summary Get Item
// @Tags catalog
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} catalog.Item
// @Failure 404 {object} map[string]string "Item not found"
// @Router /catalog/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	item, err := h.service.Get(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(item)
}

// HandleAdd creates an item.
// @Summary Add Item
// @Description Adds a catalog item. Requires the storekeeper role. The initial quantity is recorded in the ledger.
// @Tags catalog
// @Accept json
// @Produce json
// @Param item body catalog.ItemSpec true "Item"
// @Success 201 {object} catalog.Item
// @Failure 400 {object} map[string]string "Invalid item"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /catalog [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var spec catalog.ItemSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	item, err := h.service.Add(auth.Principal(c), spec)
	if err != nil {
		l.Warn("Add item refused", zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemove deletes an item.
// @Summary Remove Item
// @Description Removes an item that has no pending requests. Its ledger history is kept. Requires the storekeeper role.
// @Tags catalog
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item has pending requests"
// @Router /catalog/{id} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id := utils.CopyString(c.Params("id"))
	if err := h.service.Remove(auth.Principal(c), id); err != nil {
		l.Warn("Remove item refused", zap.String("item_id", id), zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCheckIn adds stock to an item.
// @Summary Check In Stock
// @Description Increments stock and records an "in" ledger entry. Requires the storekeeper role.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param body body CheckInBody true "Quantity and remarks"
// @Success 200 {object} map[string]interface{} "Updated item and ledger entry"
// @Failure 400 {object} map[string]string "Invalid quantity"
// @Router /catalog/{id}/checkin [post]
func (h *Handler) HandleCheckIn(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body CheckInBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id := utils.CopyString(c.Params("id"))
	item, entry, err := h.service.CheckIn(auth.Principal(c), id, body.Quantity, strings.TrimSpace(body.Remarks))
	if err != nil {
		l.Warn("Check-in refused", zap.String("item_id", id), zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"item": item, "entry": entry})
}
