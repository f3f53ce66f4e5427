package match

import (
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Similarity scores how close two strings are as 1 - d/maxLen where d is the
// Levenshtein edit distance. 1.0 means identical, 0.0 means nothing in
// common. Used only to rank suggestions for display, never to select a
// primary match.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	d := matchr.Levenshtein(a, b)
	return 1.0 - float64(d)/float64(maxLen)
}
