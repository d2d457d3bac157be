package utils

import (
	"fmt"
	"strconv"
)

// ParseID parses a positive decimal entity id, as found in URL paths.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", s)
	}
	return id, nil
}

// ParseBool reads an optional boolean query flag, falling back to def.
func ParseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
