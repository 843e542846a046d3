package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSeedFile reads baseline items from a JSON file.
func LoadSeedFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for i := range items {
		if items[i].Baseline == 0 {
			items[i].Baseline = items[i].QuantityOnHand
		}
	}
	return items, nil
}
