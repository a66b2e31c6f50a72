// Package strings provides string slice utilities used when merging role and
// group bindings.
package strings

import (
	"sort"
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice, trimming
// whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// DedupeAndSort removes duplicates and empty strings and returns the result
// in ascending order. The decision engine uses this to make role evaluation
// order deterministic.
func DedupeAndSort(values []string) []string {
	result := DedupeAndTrim(values)
	sort.Strings(result)
	return result
}
