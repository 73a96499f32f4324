package errors

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to name by edit distance, or "" when
// nothing is close enough to be a plausible typo.
func Suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range slices.Sorted(slices.Values(candidates)) {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(name)/3) {
		return ""
	}
	return best
}

// NotFound builds a *_NOT_FOUND error for an unknown key, listing a close
// match when one exists.
func NotFound(code Code, kind, name string, candidates []string) *Error {
	if s := Suggest(name, candidates); s != "" {
		return New(code, "unknown %s %q (did you mean %q?)", kind, name, s)
	}
	return New(code, "unknown %s %q (available: %s)", kind, name, strings.Join(slices.Sorted(slices.Values(candidates)), ", "))
}
