package apperr

import "errors"

var (
	// ErrNotFound reports an unknown item or request id.
	ErrNotFound = errors.New("not found")
	// ErrForbidden reports that the caller's role lacks the capability.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidQuantity reports a quantity that is zero, negative or otherwise unusable.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInsufficientStock reports a requested or approved amount above current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrSerialCountMismatch reports healthy+faulty serials not matching the requested quantity.
	ErrSerialCountMismatch = errors.New("serial count mismatch")
	// ErrAlreadyDecided reports a decision attempted on a request that is not pending.
	ErrAlreadyDecided = errors.New("already decided")
	// ErrWouldGoNegative is the catalog guard. The engine surfaces it as ErrInsufficientStock.
	ErrWouldGoNegative = errors.New("would go negative")
	// ErrHasPendingRequests reports a removal blocked by pending requests.
	ErrHasPendingRequests = errors.New("has pending requests")
	// ErrInvalidInput reports malformed input such as an incomplete item spec or unknown direction.
	ErrInvalidInput = errors.New("invalid input")
)

// Kind returns the sentinel kind wrapped by err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName returns a stable snake_case label for the kind of err.
// Unclassified errors are labelled "internal".
func KindName(err error) string {
	switch Kind(err) {
	case ErrNotFound:
		return "not_found"
	case ErrForbidden:
		return "forbidden"
	case ErrInvalidQuantity:
		return "invalid_quantity"
	case ErrInsufficientStock:
		return "insufficient_stock"
	case ErrSerialCountMismatch:
		return "serial_count_mismatch"
	case ErrAlreadyDecided:
		return "already_decided"
	case ErrWouldGoNegative:
		return "would_go_negative"
	case ErrHasPendingRequests:
		return "has_pending_requests"
	case ErrInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

var kinds = []error{
	ErrNotFound,
	ErrForbidden,
	ErrInvalidQuantity,
	ErrInsufficientStock,
	ErrSerialCountMismatch,
	ErrAlreadyDecided,
	ErrWouldGoNegative,
	ErrHasPendingRequests,
	ErrInvalidInput,
}
