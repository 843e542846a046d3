package withdrawal

import (
	"store-inventory/core/apperr"
	"store-inventory/core/logger"
	"store-inventory/core/middleware/auth"
	"store-inventory/core/requests"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for withdrawal requests.
type Handler struct {
	service *Service
	guards  []fiber.Handler
}

// NewHandler creates a new HTTP handler. Guards run before submission only.
func NewHandler(service *Service, guards ...fiber.Handler) *Handler {
	return &Handler{service: service, guards: guards}
}

// RegisterRoutes registers the request routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/requests")
	submit := append(append([]fiber.Handler{}, h.guards...), h.HandleSubmit)
	group.Post("/", submit...)
	group.Get("/", h.HandleList)
	group.Get("/pending", h.HandlePending)
	group.Get("/:id", h.HandleGet)
	group.Post("/:id/approve", h.HandleApprove)
	group.Post("/:id/reject", h.HandleReject)
}

// SubmitBody is the payload of a new request.
type SubmitBody struct {
	ItemID         string `json:"item_id"`
	Quantity       int    `json:"quantity"`
	NCRNumber      string `json:"ncr_number"`
	TrainSetNumber string `json:"train_set_number"`
	CarNumber      string `json:"car_number"`
	Remarks        string `json:"remarks"`
}

// ApproveBody carries the serials of the units handed out.
type ApproveBody struct {
	Healthy SerialList `json:"healthy" swaggertype:"array,string"`
	Faulty  SerialList `json:"faulty" swaggertype:"array,string"`
}

// HandleSubmit creates a pending request.
// @Summary Submit Request
// @Description Submits a withdrawal request. Stock is checked but not reserved. Requires the requester role.
// @Tags requests
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client-chosen key; a repeat is refused with 409"
// @Param body body SubmitBody true "Request"
// @Success 201 {object} requests.Request
// @Failure 400 {object} map[string]string "Invalid quantity"
// @Failure 409 {object} map[string]string "Insufficient stock or duplicate submission"
// @Router /requests [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body SubmitBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req, err := h.service.Submit(auth.Principal(c), body.ItemID, body.Quantity, requests.Context{
		NCRNumber:      body.NCRNumber,
		TrainSetNumber: body.TrainSetNumber,
		CarNumber:      body.CarNumber,
		Remarks:        body.Remarks,
	})
	if err != nil {
		l.Warn("Submission refused", zap.String("item_id", body.ItemID), zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// HandleList lists visible requests.
// @Summary List Requests
// @Description Storekeepers see every request, requesters their own.
// @Tags requests
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Success 200 {array} requests.Request
// @Router /requests [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list, err := h.service.List(auth.Principal(c), requests.Status(c.Query("status")))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(list)
}

// HandlePending lists visible pending requests in submission order.
// @Summary List Pending Requests
// @Tags requests
// @Produce json
// @Success 200 {array} requests.Request
// @Router /requests/pending [get]
func (h *Handler) HandlePending(c *fiber.Ctx) error {
	list, err := h.service.List(auth.Principal(c), requests.StatusPending)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(list)
}

// HandleGet returns one request.
// @Summary Get Request
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} requests.Request
// @Failure 404 {object} map[string]string "Request not found"
// @Router /requests/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	req, err := h.service.Get(auth.Principal(c), c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(req)
}

// HandleApprove approves a pending request.
// @Summary Approve Request
// @Description Re-validates stock, records the serials, decrements stock and appends an "out" ledger entry. Requires the storekeeper role.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body ApproveBody true "Serials (arrays or comma/whitespace separated text)"
// @Success 200 {object} requests.Request
// @Failure 409 {object} map[string]string "Insufficient stock or already decided"
// @Failure 422 {object} map[string]string "Serial count mismatch"
// @Router /requests/{id}/approve [post]
func (h *Handler) HandleApprove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body ApproveBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id := utils.CopyString(c.Params("id"))
	req, err := h.service.Approve(auth.Principal(c), id, requests.Serials{
		Healthy: body.Healthy,
		Faulty:  body.Faulty,
	})
	if err != nil {
		l.Warn("Approval refused", zap.String("request_id", id), zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.JSON(req)
}

// HandleReject rejects a pending request.
// @Summary Reject Request
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} requests.Request
// @Failure 409 {object} map[string]string "Already decided"
// @Router /requests/{id}/reject [post]
func (h *Handler) HandleReject(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id := utils.CopyString(c.Params("id"))
	req, err := h.service.Reject(auth.Principal(c), id)
	if err != nil {
		l.Warn("Rejection refused", zap.String("request_id", id), zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.JSON(req)
}
