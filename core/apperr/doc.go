// Package apperr defines the error kinds shared by the inventory engine and its adapters.
//
// Every component wraps one of the sentinel kinds with context using fmt.Errorf and %w,
// so callers classify failures with errors.Is regardless of which component produced them.
//
// # HTTP Mapping
//
// Status and Message translate an error into a single HTTP status code and a single
// actionable message per kind, so no adapter has to interpret error strings.
//
// # Usage
//
//	if errors.Is(err, apperr.ErrInsufficientStock) {
//	    // the request stays pending, retry or reject
//	}
//	return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": apperr.Message(err)})
package apperr
