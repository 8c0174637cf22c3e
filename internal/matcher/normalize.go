package matcher

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Normalize prepares a title for comparison: case-fold, collapse whitespace
// runs (including newlines) to a single space, trim.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Similarity scores two titles in [0,1] as
//
//	1 - editDistance(a, b) / max(len(a), len(b))
//
// over normalized strings, with rune-counted lengths. Identical normalized
// titles score 1.0.
func Similarity(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == b {
		return 1.0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
