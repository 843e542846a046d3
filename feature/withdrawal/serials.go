package withdrawal

import (
	"encoding/json"
	"fmt"

	"store-inventory/core/utils"
)

// SerialList decodes either a JSON array of serials or a free-text string.
type SerialList []string

func (s *SerialList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("serials must be an array or a string: %w", err)
	}
	*s = utils.SplitTokens(text)
	return nil
}
