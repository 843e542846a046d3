package reconcile

import (
	"fmt"
	"strings"

	"store-inventory/core/apperr"
	"store-inventory/core/requests"
)

// NormalizeSerials trims every token and checks that the healthy and faulty lists are
// sets of non-empty serials, disjoint from each other, whose combined size is want.
func NormalizeSerials(s *requests.Serials, want int) (*requests.Serials, error) {
	if s == nil {
		s = &requests.Serials{}
	}

	seen := make(map[string]string, s.Count())
	out := &requests.Serials{
		Healthy: make([]string, 0, len(s.Healthy)),
		Faulty:  make([]string, 0, len(s.Faulty)),
	}

	add := func(list string, tokens []string, dst *[]string) error {
		for _, raw := range tokens {
			tok := strings.TrimSpace(raw)
			if tok == "" {
				return fmt.Errorf("empty %s serial: %w", list, apperr.ErrSerialCountMismatch)
			}
			if prev, dup := seen[tok]; dup {
				return fmt.Errorf("serial %q listed as %s and %s: %w", tok, prev, list, apperr.ErrSerialCountMismatch)
			}
			seen[tok] = list
			*dst = append(*dst, tok)
		}
		return nil
	}

	if err := add("healthy", s.Healthy, &out.Healthy); err != nil {
		return nil, err
	}
	if err := add("faulty", s.Faulty, &out.Faulty); err != nil {
		return nil, err
	}

	if got := out.Count(); got != want {
		return nil, fmt.Errorf("got %d serials for %d units: %w", got, want, apperr.ErrSerialCountMismatch)
	}
	return out, nil
}
