package catalog

import (
	"fmt"
	"strings"
	"time"

	"store-inventory/core/apperr"
)

// Item is a catalog entry with its current stock count.
type Item struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PartNumber     string    `json:"part_number"`
	System         string    `json:"system"`
	QuantityOnHand int       `json:"quantity_on_hand"`
	Baseline       int       `json:"baseline"`
	CreatedAt      time.Time `json:"created_at"`
}

// ItemSpec describes an item to add to the catalog.
// Part numbers are not required to be unique.
type ItemSpec struct {
	Name       string `json:"name"`
	PartNumber string `json:"part_number"`
	System     string `json:"system"`
	Quantity   int    `json:"quantity"`
}

// Normalize returns a copy of the spec with surrounding whitespace removed.
func (s ItemSpec) Normalize() ItemSpec {
	s.Name = strings.TrimSpace(s.Name)
	s.PartNumber = strings.TrimSpace(s.PartNumber)
	s.System = strings.TrimSpace(s.System)
	return s
}

// Validate checks that every field is filled in and the initial quantity is positive.
func (s ItemSpec) Validate() error {
	var missing []string
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.PartNumber == "" {
		missing = append(missing, "part_number")
	}
	if s.System == "" {
		missing = append(missing, "system")
	}
	if len(missing) > 0 {
		return fmt.Errorf("item spec missing %s: %w", strings.Join(missing, ", "), apperr.ErrInvalidInput)
	}
	if s.Quantity <= 0 {
		return fmt.Errorf("initial quantity %d: %w", s.Quantity, apperr.ErrInvalidQuantity)
	}
	return nil
}
