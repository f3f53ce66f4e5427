package domain

import (
	"time"

	"github.com/google/uuid"
)

// LexiconEntry is a canonical entry in the German lexicon: a lemma with its
// part of speech, translations, usage examples, and inflected forms.
// Entries are created by the Oracle-assisted fallback when a new word is
// validated and enriched when disambiguation discovers new translations;
// the resolver never deletes them.
type LexiconEntry struct {
	ID           uuid.UUID
	Lemma        string
	PartOfSpeech PartOfSpeech
	CEFRLevel    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Translations []Translation
	Examples     []Example
	Forms        []InflectedForm
}

// Translation is one translation of a lemma into a target language,
// ordered by position within that language.
type Translation struct {
	ID       uuid.UUID
	EntryID  uuid.UUID
	LangCode string
	Text     string
	Position int
}

// Example is a usage example sentence, optionally with a translation.
type Example struct {
	ID          uuid.UUID
	EntryID     uuid.UUID
	Sentence    string
	Translation *string
	Position    int
}

// InflectedForm is a stored surface form of a lemma tagged with one
// grammatical feature, e.g. article=maskulin or tense=praesens_ich.
type InflectedForm struct {
	ID           uuid.UUID
	EntryID      uuid.UUID
	Form         string
	FeatureKey   string
	FeatureValue string
	Position     int
}

// TranslationsFor returns the entry's translations for one language code,
// in stored order.
func (e *LexiconEntry) TranslationsFor(langCode string) []Translation {
	var out []Translation
	for _, t := range e.Translations {
		if t.LangCode == langCode {
			out = append(out, t)
		}
	}
	return out
}

// HasTranslationLang reports whether the entry already carries at least one
// translation for the given language code.
func (e *LexiconEntry) HasTranslationLang(langCode string) bool {
	for _, t := range e.Translations {
		if t.LangCode == langCode {
			return true
		}
	}
	return false
}
