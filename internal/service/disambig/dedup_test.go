package disambig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup_CaseInsensitiveFirstSeenCasing(t *testing.T) {
	d := NewDedup()

	assert.True(t, d.Add("Apfel", "en"))
	assert.False(t, d.Add("apfel", "fr"), "same word, different casing")
	assert.False(t, d.Add("APFEL", "es"))
	assert.True(t, d.Add("Birne", "en"))

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"Apfel", "Birne"}, d.Words(), "first-seen casing preserved")

	table := d.Table()
	bucket, ok := table["apfel"]
	require.True(t, ok, "keyed by lowercased form")
	assert.Equal(t, "Apfel", bucket.FirstSeen)
	assert.Equal(t, []string{"en", "fr", "es"}, bucket.SourceLangs)
}

func TestDedup_SameLanguageRecordedOnce(t *testing.T) {
	d := NewDedup()
	d.Add("Haus", "en")
	d.Add("haus", "en")

	bucket := d.Table()["haus"]
	assert.Equal(t, []string{"en"}, bucket.SourceLangs)
}

func TestDedup_IgnoresEmpty(t *testing.T) {
	d := NewDedup()
	assert.False(t, d.Add("  ", "en"))
	assert.Zero(t, d.Len())
}
