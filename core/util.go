package core

import (
	"strconv"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseIDs parses a comma separated list of positive integer IDs, e.g. "1, 4,7".
func ParseIDs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, NewValidationError(nil, FieldError{Field: "ids", Error: "invalid ID " + strconv.Quote(part)})
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, NewValidationError(nil, FieldError{Field: "ids", Error: "at least one ID is required"})
	}
	return ids, nil
}
