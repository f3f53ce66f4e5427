package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// umlautSwaps flips the case of German umlauts; ß maps to itself.
// Applying the swap twice restores the original string.
var umlautSwaps = map[rune]rune{
	'ä': 'Ä', 'Ä': 'ä',
	'ö': 'Ö', 'Ö': 'ö',
	'ü': 'Ü', 'Ü': 'ü',
	'ß': 'ß',
}

// CaseVariants produces the ordered, duplicate-free set of surface forms for
// one token: identity, lowercase, uppercase, capitalize-first, title-case,
// plus the umlaut case swap of each. The original token is always first.
// Deterministic, no I/O.
func CaseVariants(token string) []string {
	base := []string{
		token,
		strings.ToLower(token),
		strings.ToUpper(token),
		capitalizeFirst(token),
		cases.Title(language.German).String(token),
	}

	seen := make(map[string]struct{}, len(base)*2)
	variants := make([]string, 0, len(base)*2)
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		variants = append(variants, s)
	}

	for _, v := range base {
		add(v)
	}
	for _, v := range base {
		add(swapUmlautCase(v))
	}

	return variants
}

// swapUmlautCase flips ä↔Ä, ö↔Ö, ü↔Ü in the token. Involutive.
func swapUmlautCase(token string) string {
	return strings.Map(func(r rune) rune {
		if swapped, ok := umlautSwaps[r]; ok {
			return swapped
		}
		return r
	}, token)
}

// capitalizeFirst uppercases the first rune and leaves the rest untouched,
// unlike title-casing which lowercases the remainder.
func capitalizeFirst(token string) string {
	r, size := utf8.DecodeRuneInString(token)
	if size == 0 || r == utf8.RuneError {
		return token
	}
	return string(unicode.ToUpper(r)) + token[size:]
}
