package resolver

import (
	"github.com/google/uuid"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/service/match"
)

// Kind discriminates the shape of a resolution outcome.
type Kind string

const (
	// KindResolved carries exactly one lexicon entry.
	KindResolved Kind = "RESOLVED"
	// KindChoice asks the caller to pick one option and come back through
	// ResolveWithSelection.
	KindChoice Kind = "CHOICE"
	// KindNotFound is terminal with display suggestions.
	KindNotFound Kind = "NOT_FOUND"
	// KindError is terminal with a short diagnostic message.
	KindError Kind = "ERROR"
)

// Option is one selectable alternative inside a Choice. Which fields are
// populated depends on the choice kind: pos-sense options carry EntryID and
// PartOfSpeech, language and translation selects carry SourceLang.
type Option struct {
	Word         string
	SourceLang   string
	LanguageName string
	PartOfSpeech domain.PartOfSpeech
	Meaning      string
	EntryID      uuid.UUID
}

// Outcome is the terminal result of one resolution: a discriminated record
// switched on Kind, with variant-specific payloads.
type Outcome struct {
	Kind Kind

	// Entry is set for KindResolved.
	Entry *domain.LexiconEntry

	// ChoiceKind and Options are set for KindChoice.
	ChoiceKind domain.ChoiceKind
	Options    []Option

	// Suggestions is set for KindNotFound.
	Suggestions []match.RankedSuggestion

	// Scenario is the disambiguation scenario of the round, when the gate
	// ran; ScenarioNone otherwise.
	Scenario domain.Scenario

	// Message is set on every terminal except KindResolved.
	Message string
}

func resolved(entry *domain.LexiconEntry) *Outcome {
	return &Outcome{Kind: KindResolved, Entry: entry}
}

func errorOutcome(message string) *Outcome {
	return &Outcome{Kind: KindError, Message: message}
}
