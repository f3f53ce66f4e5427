package wordlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# German core vocabulary",
		"",
		"Apfel\tNOUN\tapple\tDer Apfel ist rot.\tÄpfel|number=plural;Apfels|case=genitiv",
		"laufen\tVERB\tto run;to walk",
		"schnell\tadj\tfast;quick\t\t",
	}, "\n")

	records, parseErrs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, parseErrs)
	require.Len(t, records, 3)

	apfel := records[0]
	assert.Equal(t, "Apfel", apfel.Lemma)
	assert.Equal(t, domain.PartOfSpeechNoun, apfel.PartOfSpeech)
	assert.Equal(t, []string{"apple"}, apfel.Translations)
	assert.Equal(t, "Der Apfel ist rot.", apfel.Example)
	require.Len(t, apfel.Forms, 2)
	assert.Equal(t, "Äpfel", apfel.Forms[0].Form)
	assert.Equal(t, "number", apfel.Forms[0].FeatureKey)
	assert.Equal(t, "plural", apfel.Forms[0].FeatureValue)

	laufen := records[1]
	assert.Equal(t, domain.PartOfSpeechVerb, laufen.PartOfSpeech)
	assert.Equal(t, []string{"to run", "to walk"}, laufen.Translations)
	assert.Empty(t, laufen.Forms)

	schnell := records[2]
	assert.Equal(t, domain.PartOfSpeechAdjective, schnell.PartOfSpeech, "free-form pos strings are normalized")
}

func TestParse_BadLinesAreCollected(t *testing.T) {
	input := strings.Join([]string{
		"Apfel\tNOUN\tapple",
		"kaputt",                      // too few fields
		"\tNOUN\tnothing",             // empty lemma
		"Haus\tNOUN\t;",               // no usable translations
		"Tisch\tNOUN\ttable\t\tTische|plural", // feature not key=value
	}, "\n")

	records, parseErrs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 1, "only the valid line survives")
	assert.Equal(t, "Apfel", records[0].Lemma)

	require.Len(t, parseErrs, 4)
	assert.Equal(t, 2, parseErrs[0].Line)
	assert.Contains(t, parseErrs[3].Msg, "key=value")
}
