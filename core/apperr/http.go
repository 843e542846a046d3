package apperr

import (
	"github.com/gofiber/fiber/v2"
)

// Status maps an error to the HTTP status code for its kind.
func Status(err error) int {
	switch Kind(err) {
	case ErrNotFound:
		return fiber.StatusNotFound
	case ErrForbidden:
		return fiber.StatusForbidden
	case ErrInvalidQuantity, ErrInvalidInput:
		return fiber.StatusBadRequest
	case ErrInsufficientStock, ErrWouldGoNegative, ErrAlreadyDecided, ErrHasPendingRequests:
		return fiber.StatusConflict
	case ErrSerialCountMismatch:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the user-facing message for the kind of err.
// The wrapped detail is appended so the caller knows which id or amount was rejected.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var prefix string
	switch Kind(err) {
	case ErrNotFound:
		prefix = "The item or request does not exist"
	case ErrForbidden:
		prefix = "Your role is not allowed to perform this action"
	case ErrInvalidQuantity:
		prefix = "Quantity must be a whole number greater than zero"
	case ErrInsufficientStock, ErrWouldGoNegative:
		prefix = "Not enough stock available for this quantity"
	case ErrSerialCountMismatch:
		prefix = "Enter exactly one distinct serial number per requested unit (healthy + faulty)"
	case ErrAlreadyDecided:
		prefix = "This request has already been decided"
	case ErrHasPendingRequests:
		prefix = "Decide the pending requests for this item before removing it"
	case ErrInvalidInput:
		prefix = "The submitted data is incomplete or malformed"
	default:
		return "Internal error"
	}
	return prefix + " (" + err.Error() + ")"
}

// Respond writes err as a JSON error body with its status code.
func Respond(c *fiber.Ctx, err error) error {
	return c.Status(Status(err)).JSON(fiber.Map{
		"error": Message(err),
		"kind":  KindName(err),
	})
}
