package domain

import "strings"

// GermanLangCode is the ISO 639-1 code the whole resolver keys German on.
const GermanLangCode = "de"

// LanguageCandidate is one ranked detection result for a query.
type LanguageCandidate struct {
	Code       string
	Name       string
	Confidence float64
	IsGerman   bool
}

// TranslationCandidate is one German translation proposed for a query,
// tied to the source language it was translated from.
type TranslationCandidate struct {
	GermanWord   string
	Context      string
	PartOfSpeech string
	SourceLang   string
}

// TranslationBucket groups case-insensitive duplicates of one German word
// across all source languages. FirstSeen preserves the casing of the first
// candidate that produced the bucket; SourceLangs records every contributing
// source language in first-contribution order.
type TranslationBucket struct {
	FirstSeen   string
	SourceLangs []string
}

// BucketKey is the case-insensitive dedup key for a German surface form.
func BucketKey(germanWord string) string {
	return strings.ToLower(strings.TrimSpace(germanWord))
}
