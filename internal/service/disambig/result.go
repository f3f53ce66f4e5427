package disambig

import (
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// Action tells the presentation layer what to do with a section.
type Action string

const (
	// ActionLookUpDirectly means the section has exactly one candidate word
	// (or is the German section carrying the original text).
	ActionLookUpDirectly Action = "LOOK_UP_DIRECTLY"
	// ActionPickThenLookUp means the caller picks one of several words first.
	ActionPickThenLookUp Action = "PICK_THEN_LOOK_UP"
	// ActionNone means the section yielded no usable candidates.
	ActionNone Action = "NONE"
)

// Section is the per-language portion of a gate outcome. Sections are
// ordered by detection confidence, German first when present.
type Section struct {
	Language   domain.LanguageCandidate
	Candidates []domain.TranslationCandidate
	Action     Action
	// Degraded marks a section whose translation call failed; the failure
	// is contained here and never aborts the gate.
	Degraded bool
}

// Outcome is the result of one disambiguation round.
type Outcome struct {
	Scenario domain.Scenario
	Sections []Section
	// Dedup is the full case-insensitive dedup table across all sections,
	// keyed by lowercased German form.
	Dedup map[string]domain.TranslationBucket
	// Message explains a terminal ScenarioNone outcome.
	Message string
}

// HasGermanSection reports whether a confident German candidate survived.
func (o *Outcome) HasGermanSection() bool {
	for _, s := range o.Sections {
		if s.Language.IsGerman {
			return true
		}
	}
	return false
}

// NonGermanSections returns the sections for non-German candidates,
// in confidence order.
func (o *Outcome) NonGermanSections() []Section {
	var out []Section
	for _, s := range o.Sections {
		if !s.Language.IsGerman {
			out = append(out, s)
		}
	}
	return out
}
