package path

import (
	"regexp"
	"slices"
	"strings"
)

// IndexWidth is the number of digits indices are padded to by SortKey.
// Paths with indices of more than IndexWidth digits are not guaranteed to
// sort numerically.
const IndexWidth = 5

var bracketedIndex = regexp.MustCompile(`\[([0-9]+)\]`)

// SortKey rewrites every bracketed integer in s to IndexWidth zero-padded
// digits, so that plain string comparison of keys orders indices
// numerically: "a[2]" becomes "a[00002]" and sorts before "a[00010]".
func SortKey(s string) string {
	if !strings.Contains(s, "[") {
		return s
	}
	return bracketedIndex.ReplaceAllStringFunc(s, func(m string) string {
		digits := m[1 : len(m)-1]
		if len(digits) >= IndexWidth {
			return m
		}
		return "[" + strings.Repeat("0", IndexWidth-len(digits)) + digits + "]"
	})
}

// Compare orders two path strings by their sort keys.
func Compare(a, b string) int {
	return strings.Compare(SortKey(a), SortKey(b))
}

// Sort orders paths in place by SortKey. Equal keys keep their order.
func Sort(paths []string) {
	keys := make(map[string]string, len(paths))
	for _, p := range paths {
		keys[p] = SortKey(p)
	}
	slices.SortStableFunc(paths, func(a, b string) int {
		return strings.Compare(keys[a], keys[b])
	})
}
