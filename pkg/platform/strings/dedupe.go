// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// NormalizeIDs trims each identifier, drops empties and keeps the first
// occurrence of duplicates. Order is preserved. A nil or empty input yields an
// empty, non-nil slice so persisted lists serialize as [].
//
// Example:
//
//	NormalizeIDs([]string{" 1111 ", "2222", "1111", ""})
//	// Returns: []string{"1111", "2222"}
func NormalizeIDs(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// Contains reports whether id is present in ids.
func Contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
