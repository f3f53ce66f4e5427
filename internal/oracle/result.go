// Package oracle defines the result types consumed from the language Oracle:
// ranked language detection, per-language German translation, and word
// analysis. Adapters under internal/adapter/oracle produce these types; the
// core never sees provider wire formats.
package oracle

// DetectedLanguage is one ranked candidate from language detection.
type DetectedLanguage struct {
	Code       string
	Name       string
	Confidence float64
	IsGerman   bool
}

// Translation is one German translation candidate for a source-language word.
type Translation struct {
	GermanWord   string
	Context      string
	PartOfSpeech string
}

// TranslationResult is the full response of one translate-to-German call.
type TranslationResult struct {
	Translations []Translation
	IsAmbiguous  bool
}

// Suggestion is an alternative word proposed when analysis rejects the input.
type Suggestion struct {
	Word    string
	POS     string
	Meaning string
}

// WordAnalysis is the verdict of analyzing a single candidate German word.
// Found=true carries a structured entry (possibly typo-corrected via
// CorrectedFrom); Found=false carries suggestions for display.
type WordAnalysis struct {
	Found bool

	Lemma         string
	POS           string
	Translations  []string // English glosses, in order
	Example       string
	CorrectedFrom string

	Suggestions []Suggestion
}
