package domain

import "strings"

// CriterionSet is an include/exclude pair expressing "match unless excluded,
// and if includes is non-empty, also require inclusion."
//
// The zero value (both lists empty) matches every candidate: a role that
// defines no criteria is unrestricted on that axis.
type CriterionSet[T comparable] struct {
	Includes []T `json:"includes,omitempty"`
	Excludes []T `json:"excludes,omitempty"`
}

// Matches evaluates the candidate against the set with exact-equality
// semantics, in this fixed order: exclusion always wins; an empty include
// list permits everything; otherwise at least one include must equal the
// candidate.
func (c CriterionSet[T]) Matches(candidate T) bool {
	return matches(c, candidate, func(entry, candidate T) bool { return entry == candidate })
}

func matches[T comparable](c CriterionSet[T], candidate T, relates func(entry, candidate T) bool) bool {
	for _, entry := range c.Excludes {
		if relates(entry, candidate) {
			return false
		}
	}
	if len(c.Includes) == 0 {
		return true
	}
	for _, entry := range c.Includes {
		if relates(entry, candidate) {
			return true
		}
	}
	return false
}

// PathSet applies the same include/exclude algorithm with path-prefix
// semantics: an entry relates to a candidate path when the entry is a whole
// prefix of the path on a segment boundary. Entry "/a" matches "/a" and
// "/a/b/c" but never "/ab".
type PathSet CriterionSet[string]

// Matches evaluates the candidate path against the set. Entries and the
// candidate are normalized to begin with "/" before comparison, so spurious
// substring matches cannot occur.
func (p PathSet) Matches(path string) bool {
	candidate := NormalizePath(path)
	return matches(CriterionSet[string](p), candidate, func(entry, candidate string) bool {
		return hasPathPrefix(candidate, NormalizePath(entry))
	})
}

// NormalizePath forces a leading "/" and strips any trailing "/" so that
// prefix comparison works on canonical forms. The empty path normalizes to
// the root "/", which matches everything.
func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// hasPathPrefix reports whether entry is a segment-boundary prefix of
// candidate. Both arguments must already be normalized.
func hasPathPrefix(candidate, entry string) bool {
	if entry == "/" {
		return true
	}
	if !strings.HasPrefix(candidate, entry) {
		return false
	}
	return len(candidate) == len(entry) || candidate[len(entry)] == '/'
}
