package history

import (
	"fmt"

	"store-inventory/core/apperr"
	"store-inventory/core/ledger"
	"store-inventory/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the ledger.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ledger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ledger")
	group.Get("/:itemId", h.HandleEntries)
	group.Get("/:itemId/verify", h.HandleVerify)
}

// HandleEntries lists an item's ledger entries.
// @Summary Item Ledger
// @Description Lists stock movements of an item in timestamp order. An empty list is returned for unknown items.
// @Tags ledger
// @Produce json
// @Param itemId path string true "Item ID"
// @Param direction query string false "in or out"
// @Success 200 {array} ledger.Entry
// @Failure 400 {object} map[string]string "Invalid direction"
// @Router /ledger/{itemId} [get]
func (h *Handler) HandleEntries(c *fiber.Ctx) error {
	direction := ledger.Direction(c.Query("direction"))
	if direction != "" && !direction.IsValid() {
		return apperr.Respond(c, fmt.Errorf("direction %q: %w", direction, apperr.ErrInvalidInput))
	}
	return c.JSON(h.service.Entries(c.Params("itemId"), direction))
}

// HandleVerify audits an item.
// @Summary Verify Item
// @Description Checks that baseline + in - out equals the stock on hand.
// @Tags ledger
// @Produce json
// @Param itemId path string true "Item ID"
// @Success 200 {object} reconcile.Audit
// @Failure 404 {object} map[string]string "Item not found"
// @Router /ledger/{itemId}/verify [get]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	audit, err := h.service.Verify(utils.CopyString(c.Params("itemId")))
	if err != nil {
		return apperr.Respond(c, err)
	}
	if !audit.Balanced {
		logger.WithRayID(h.service.logger, c).Error("Conservation breach",
			zap.String("item_id", audit.ItemID),
			zap.Int("expected", audit.Expected),
			zap.Int("on_hand", audit.OnHand),
		)
	}
	return c.JSON(audit)
}
