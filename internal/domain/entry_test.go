package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconEntry_TranslationsFor(t *testing.T) {
	entry := &LexiconEntry{
		Lemma: "Tisch",
		Translations: []Translation{
			{LangCode: "en", Text: "table", Position: 0},
			{LangCode: "fr", Text: "table", Position: 0},
			{LangCode: "en", Text: "desk", Position: 1},
		},
	}

	en := entry.TranslationsFor("en")
	assert.Len(t, en, 2)
	assert.Equal(t, "table", en[0].Text)
	assert.Equal(t, "desk", en[1].Text)

	assert.Empty(t, entry.TranslationsFor("es"))
}

func TestLexiconEntry_HasTranslationLang(t *testing.T) {
	entry := &LexiconEntry{
		Translations: []Translation{{LangCode: "en", Text: "apple"}},
	}

	assert.True(t, entry.HasTranslationLang("en"))
	assert.False(t, entry.HasTranslationLang("fr"))
	assert.False(t, (&LexiconEntry{}).HasTranslationLang("en"))
}

func TestBucketKey(t *testing.T) {
	assert.Equal(t, "apfel", BucketKey("Apfel"))
	assert.Equal(t, "apfel", BucketKey("  APFEL "))
	assert.Equal(t, "straße", BucketKey("Straße"))
}
