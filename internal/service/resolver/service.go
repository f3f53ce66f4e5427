// Package resolver is the facade in front of the match engine and the
// disambiguation gate. It owns the per-query state machine and reduces every
// path to one of four terminals: Resolved, Choice, NotFound, Error.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/service/disambig"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/service/match"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type matchEngine interface {
	Resolve(ctx context.Context, query string) (*match.Result, error)
}

type languageGate interface {
	Classify(ctx context.Context, text string) (*disambig.Outcome, error)
}

type lexiconStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LexiconEntry, error)
	AddTranslations(ctx context.Context, entryID uuid.UUID, translations []domain.Translation) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the resolution facade.
type Service struct {
	log    *slog.Logger
	engine matchEngine
	gate   languageGate
	store  lexiconStore
}

// NewService creates a resolution facade.
func NewService(logger *slog.Logger, engine matchEngine, gate languageGate, store lexiconStore) *Service {
	return &Service{
		log:    logger.With("service", "resolver"),
		engine: engine,
		gate:   gate,
		store:  store,
	}
}

// Resolve runs one resolution round for a query.
//
// With germanConfirmed the query goes straight into the match engine.
// Otherwise the gate classifies the round first; any non-German section
// forces a Choice, scenario none and gate failures fall back to the
// lexicon-only single-language path.
func (s *Service) Resolve(ctx context.Context, query string, germanConfirmed bool) (*Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("query", "must not be empty")
	}

	if germanConfirmed {
		return s.resolveGerman(ctx, query, domain.ScenarioNone)
	}

	gateOut, err := s.gate.Classify(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		// Detection is down; the deterministic strategies still work
		// against the store alone.
		s.log.WarnContext(ctx, "gate unavailable, lexicon-only fallback",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return s.resolveGerman(ctx, query, domain.ScenarioNone)
	}

	return s.continueFromGate(ctx, query, gateOut)
}

// ResolveWithSelection completes the round-trip after a Choice: the caller
// picked one German surface form out of the offered options. sourceLang is
// the language of the original query when the choice was a language or
// translation select; it drives enrichment of the resolved entry.
//
// entryID pins the pick to one entry when the options shared a surface form
// (homographs from a pos-sense choice). With uuid.Nil the selected form goes
// back through the engine.
func (s *Service) ResolveWithSelection(ctx context.Context, originalQuery, selected, sourceLang string, entryID uuid.UUID) (*Outcome, error) {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return nil, domain.NewValidationError("selected", "must not be empty")
	}

	if entryID != uuid.Nil {
		return s.resolveByID(ctx, entryID, originalQuery, sourceLang)
	}

	out, err := s.resolveGerman(ctx, selected, domain.ScenarioNone)
	if err != nil {
		return nil, err
	}

	if out.Kind == KindResolved {
		s.enrich(ctx, out.Entry, originalQuery, sourceLang)
	}
	return out, nil
}

// resolveByID completes a pos-sense pick by primary key, bypassing the
// engine so homographs sharing a lemma cannot re-trigger the same choice.
func (s *Service) resolveByID(ctx context.Context, entryID uuid.UUID, originalQuery, sourceLang string) (*Outcome, error) {
	entry, err := s.store.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("entry_id", "no such entry")
		}
		s.log.ErrorContext(ctx, "entry lookup by id failed",
			slog.String("entry_id", entryID.String()),
			slog.String("error", err.Error()),
		)
		return errorOutcome(engineErrorMessage(err)), nil
	}

	out := resolved(entry)
	s.enrich(ctx, out.Entry, originalQuery, sourceLang)
	return out, nil
}

// continueFromGate maps a gate outcome onto the facade terminals.
func (s *Service) continueFromGate(ctx context.Context, query string, gateOut *disambig.Outcome) (*Outcome, error) {
	if gateOut.Scenario == domain.ScenarioNone {
		out, err := s.resolveGerman(ctx, query, domain.ScenarioNone)
		if err != nil {
			return nil, err
		}
		if out.Kind == KindNotFound && gateOut.Message != "" {
			out.Message = gateOut.Message
		}
		return out, nil
	}

	nonGerman := gateOut.NonGermanSections()

	// German is the only confident reading: straight into the engine.
	if len(nonGerman) == 0 {
		return s.resolveGerman(ctx, query, gateOut.Scenario)
	}

	options := sectionOptions(gateOut.Sections)

	// Every non-German section degraded to nothing and no German reading
	// exists. Nothing to choose from; fall back to the lexicon.
	if len(options) == 0 {
		return s.resolveGerman(ctx, query, gateOut.Scenario)
	}

	// A non-German section exists, so resolution never auto-continues,
	// even with a single candidate.
	kind := domain.ChoiceKindTranslation
	if len(gateOut.Sections) > 1 {
		kind = domain.ChoiceKindLanguage
	}

	return &Outcome{
		Kind:       KindChoice,
		ChoiceKind: kind,
		Options:    options,
		Scenario:   gateOut.Scenario,
		Message:    choiceMessage(kind),
	}, nil
}

// resolveGerman runs the match engine on a confirmed-or-assumed German form
// and maps the engine result onto the facade terminals.
func (s *Service) resolveGerman(ctx context.Context, query string, scenario domain.Scenario) (*Outcome, error) {
	res, err := s.engine.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		s.log.ErrorContext(ctx, "match engine failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		out := errorOutcome(engineErrorMessage(err))
		out.Scenario = scenario
		return out, nil
	}

	out := s.mapEngineResult(query, res)
	out.Scenario = scenario
	return out, nil
}

func (s *Service) mapEngineResult(query string, res *match.Result) *Outcome {
	switch res.Kind {
	case match.KindSingle:
		return resolved(res.Entry)

	case match.KindMultiple:
		options := make([]Option, 0, len(res.Entries))
		for i := range res.Entries {
			e := &res.Entries[i]
			options = append(options, Option{
				Word:         e.Lemma,
				SourceLang:   domain.GermanLangCode,
				PartOfSpeech: e.PartOfSpeech,
				Meaning:      firstGloss(e),
				EntryID:      e.ID,
			})
		}
		return &Outcome{
			Kind:       KindChoice,
			ChoiceKind: domain.ChoiceKindPOSSense,
			Options:    options,
			Message:    fmt.Sprintf("%q matches %d senses, pick one", query, len(options)),
		}

	default:
		return &Outcome{
			Kind:        KindNotFound,
			Suggestions: res.Suggestions,
			Message:     res.Message,
		}
	}
}

// enrich appends the original foreign query as a translation of the chosen
// entry when its source language is not represented yet. Failures are
// logged, never surfaced; the resolution already succeeded.
func (s *Service) enrich(ctx context.Context, entry *domain.LexiconEntry, originalQuery, sourceLang string) {
	originalQuery = strings.TrimSpace(originalQuery)
	if originalQuery == "" || sourceLang == "" || sourceLang == domain.GermanLangCode {
		return
	}
	if entry.HasTranslationLang(sourceLang) {
		return
	}

	tr := domain.Translation{
		EntryID:  entry.ID,
		LangCode: sourceLang,
		Text:     originalQuery,
		Position: len(entry.Translations),
	}
	if err := s.store.AddTranslations(ctx, entry.ID, []domain.Translation{tr}); err != nil {
		s.log.WarnContext(ctx, "enrichment append failed",
			slog.String("lemma", entry.Lemma),
			slog.String("lang", sourceLang),
			slog.String("error", err.Error()),
		)
		return
	}

	entry.Translations = append(entry.Translations, tr)
	s.log.DebugContext(ctx, "entry enriched",
		slog.String("lemma", entry.Lemma),
		slog.String("lang", sourceLang),
	)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func sectionOptions(sections []disambig.Section) []Option {
	var options []Option
	for _, sec := range sections {
		for _, c := range sec.Candidates {
			options = append(options, Option{
				Word:         c.GermanWord,
				SourceLang:   sec.Language.Code,
				LanguageName: sec.Language.Name,
				Meaning:      c.Context,
			})
		}
	}
	return options
}

func choiceMessage(kind domain.ChoiceKind) string {
	if kind == domain.ChoiceKindLanguage {
		return "the query reads in more than one language, pick the intended one"
	}
	return "pick the intended German word"
}

func engineErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrOracleUnavailable):
		return "the language oracle is unavailable, try again later"
	case errors.Is(err, domain.ErrOracleMalformed):
		return "the language oracle returned an unusable answer"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "the lexicon store is unavailable, try again later"
	default:
		return "resolution failed"
	}
}

func firstGloss(e *domain.LexiconEntry) string {
	for _, t := range e.Translations {
		if t.LangCode == "en" {
			return t.Text
		}
	}
	if len(e.Translations) > 0 {
		return e.Translations[0].Text
	}
	return ""
}
