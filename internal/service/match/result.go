package match

import (
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// Strategy names one step of the cascading match sequence.
type Strategy string

const (
	StrategyDirectLemma      Strategy = "direct_lemma"
	StrategyInflectedForm    Strategy = "inflected_form"
	StrategyArticleStripped  Strategy = "article_stripped"
	StrategyCompoundBoundary Strategy = "compound_boundary"
	StrategyCaseVariation    Strategy = "case_variation"
	StrategyOracleFallback   Strategy = "oracle_fallback"
)

// Kind discriminates the shape of a Result.
type Kind string

const (
	// KindSingle carries exactly one resolved entry.
	KindSingle Kind = "SINGLE"
	// KindMultiple carries homograph entries needing an explicit tie-break.
	// Only the direct-lemma strategy produces it.
	KindMultiple Kind = "MULTIPLE"
	// KindNotFound is terminal: no strategy matched and the Oracle could not
	// validate the word. Carries suggestions for display.
	KindNotFound Kind = "NOT_FOUND"
)

// RankedSuggestion is a display-only alternative, ranked by Similarity to
// the original query.
type RankedSuggestion struct {
	Word    string
	POS     string
	Meaning string
	Score   float64
}

// Result is the outcome of one engine run: a discriminated record switched
// on Kind, with variant-specific payloads.
type Result struct {
	Kind     Kind
	Strategy Strategy

	// Entry is set for KindSingle.
	Entry *domain.LexiconEntry
	// Entries is set for KindMultiple, deduplicated by lemma id.
	Entries []domain.LexiconEntry

	// Suggestions and Message are set for KindNotFound.
	Suggestions []RankedSuggestion
	Message     string
}
