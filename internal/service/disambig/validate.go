package disambig

import (
	"strings"
	"unicode"
)

// englishExonyms rewrites known English place names to their German endonym.
// The Oracle occasionally leaks the English exonym when translating place
// names from a third language.
var englishExonyms = map[string]string{
	"munich":         "München",
	"cologne":        "Köln",
	"nuremberg":      "Nürnberg",
	"vienna":         "Wien",
	"zurich":         "Zürich",
	"geneva":         "Genf",
	"basle":          "Basel",
	"hanover":        "Hannover",
	"brunswick":      "Braunschweig",
	"cassel":         "Kassel",
	"germany":        "Deutschland",
	"austria":        "Österreich",
	"switzerland":    "Schweiz",
	"bavaria":        "Bayern",
	"saxony":         "Sachsen",
	"hesse":          "Hessen",
	"rhineland":      "Rheinland",
	"black forest":   "Schwarzwald",
	"lake constance": "Bodensee",
	"danube":         "Donau",
	"rhine":          "Rhein",
	"moselle":        "Mosel",
}

// germanSuffixes are derivational endings distinctive enough to accept a
// form as plausibly German. Deliberately excludes short inflectional endings
// like -en or -er that English words share.
var germanSuffixes = []string{
	"ung", "heit", "keit", "schaft", "chen", "lein", "nis", "tum",
	"ling", "isch", "lich", "ig", "bar", "sam", "haft", "los",
	"voll", "ität", "ieren",
}

// CorrectExonym returns the German endonym for a known English exonym,
// or the input unchanged.
func CorrectExonym(word string) string {
	if endonym, ok := englishExonyms[strings.ToLower(strings.TrimSpace(word))]; ok {
		return endonym
	}
	return word
}

// LooksGerman is the acceptance heuristic for Oracle-returned "German"
// forms: contains an umlaut or ß, or ends in a distinctive German
// derivational suffix, or is a single capitalized token (German nouns).
// Deliberately rough — it exists to catch English loanword leakage, not to
// verify German morphology.
func LooksGerman(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}

	if strings.ContainsAny(word, "äöüÄÖÜß") {
		return true
	}

	lower := strings.ToLower(word)
	for _, suffix := range germanSuffixes {
		if len(lower) >= len(suffix)+2 && strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	return isSingleCapitalizedToken(word)
}

// ValidateGermanWord applies exonym correction, then the heuristic.
// Returns the possibly rewritten word and whether it was accepted.
func ValidateGermanWord(word string) (string, bool) {
	word = CorrectExonym(strings.TrimSpace(word))
	return word, LooksGerman(word)
}

func isSingleCapitalizedToken(word string) bool {
	if strings.ContainsRune(word, ' ') {
		return false
	}
	for i, r := range word {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) || unicode.IsUpper(r) {
			return false
		}
	}
	return len(word) > 1
}
