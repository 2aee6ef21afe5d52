// Package matching scores contact pairs and classifies likely duplicates.
package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Mode selects how two field values are compared.
type Mode int

const (
	// ModeExact matches identical, non-blank values.
	ModeExact Mode = iota
	// ModeExactFold matches non-blank values that are equal ignoring case.
	ModeExactFold
	// ModeEditDistance scores values by normalized Levenshtein distance.
	ModeEditDistance
)

// Similarity compares a and b under mode and returns a value in [0, 1].
func Similarity(a, b string, mode Mode) float64 {
	switch mode {
	case ModeExact:
		return ExactSimilarity(a, b, true)
	case ModeExactFold:
		return ExactSimilarity(a, b, false)
	default:
		return EditSimilarity(a, b)
	}
}

// ExactSimilarity returns 1.0 when both values are present and equal, 0.0
// otherwise. Two blank values do not match.
func ExactSimilarity(a, b string, caseSensitive bool) float64 {
	if IsBlank(a) || IsBlank(b) {
		return 0.0
	}
	if caseSensitive {
		if a == b {
			return 1.0
		}
		return 0.0
	}
	if strings.EqualFold(a, b) {
		return 1.0
	}
	return 0.0
}

// EditSimilarity returns 1 - d/max(len(a), len(b)) where d is the Levenshtein
// distance between the lowercased inputs and lengths count code points.
// Two empty strings are identical.
func EditSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(EditDistance(a, b))/float64(maxLen)
}

// EditDistance is the minimum number of single character insertions,
// deletions and substitutions turning a into b. Case-sensitive.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
