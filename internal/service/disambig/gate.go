// Package disambig implements the cross-language disambiguation gate: it
// detects candidate source languages for a query, filters them by
// confidence, classifies the round into a scenario, and collects validated,
// deduplicated German translations per surviving candidate.
package disambig

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/config"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/oracle"
)

// maxDetectLanguages is how many ranked candidates the Oracle is asked for.
const maxDetectLanguages = 5

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type languageOracle interface {
	DetectLanguages(ctx context.Context, text string, maxN int) ([]oracle.DetectedLanguage, error)
	TranslateToGerman(ctx context.Context, text, sourceLang string, reinforced bool) (*oracle.TranslationResult, error)
}

// ---------------------------------------------------------------------------
// Gate
// ---------------------------------------------------------------------------

// Gate orchestrates one disambiguation round. Thresholds and caps come from
// the config parameter object, so behavior is testable per configuration.
type Gate struct {
	log    *slog.Logger
	oracle languageOracle
	cfg    config.GateConfig
}

// NewGate creates a disambiguation gate.
func NewGate(logger *slog.Logger, o languageOracle, cfg config.GateConfig) *Gate {
	return &Gate{
		log:    logger.With("service", "disambig"),
		oracle: o,
		cfg:    cfg,
	}
}

// Classify runs detection, filtering, scenario classification, and
// per-language translation collection for one query.
//
// The initial detection call gates everything and its failure propagates to
// the caller. Per-language translation failures degrade only their own
// section. ScenarioNone is terminal: no translation calls are made.
func (g *Gate) Classify(ctx context.Context, text string) (*Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "must not be empty")
	}

	detected, err := g.oracle.DetectLanguages(ctx, text, maxDetectLanguages)
	if err != nil {
		return nil, fmt.Errorf("detect languages: %w", err)
	}

	candidates := g.filterCandidates(detected)

	var german *domain.LanguageCandidate
	var others []domain.LanguageCandidate
	for _, c := range candidates {
		if c.IsGerman {
			c := c
			german = &c
		} else {
			others = append(others, c)
		}
	}

	scenario := ClassifyScenario(german != nil, len(others))

	g.log.DebugContext(ctx, "language detection classified",
		slog.String("text", text),
		slog.String("scenario", scenario.String()),
		slog.Bool("has_german", german != nil),
		slog.Int("non_german", len(others)),
	)

	if scenario == domain.ScenarioNone {
		return &Outcome{
			Scenario: domain.ScenarioNone,
			Dedup:    map[string]domain.TranslationBucket{},
			Message:  fmt.Sprintf("no language could be detected for %q with enough confidence", text),
		}, nil
	}

	outcome := &Outcome{Scenario: scenario}

	translated := g.translateAll(ctx, text, others)

	// Sections keep the detection confidence order; the German reading
	// takes its own confidence slot like any other candidate. A German
	// section needs no translation call, the original text itself is the
	// candidate lemma.
	next := 0
	for _, c := range candidates {
		if c.IsGerman {
			outcome.Sections = append(outcome.Sections, Section{
				Language: c,
				Candidates: []domain.TranslationCandidate{{
					GermanWord: text,
					SourceLang: domain.GermanLangCode,
				}},
				Action: ActionLookUpDirectly,
			})
			continue
		}
		outcome.Sections = append(outcome.Sections, translated[next])
		next++
	}

	dedup := NewDedup()
	for _, s := range outcome.Sections {
		for _, c := range s.Candidates {
			dedup.Add(c.GermanWord, c.SourceLang)
		}
	}
	outcome.Dedup = dedup.Table()

	return outcome, nil
}

// filterCandidates keeps candidates at or above the confidence threshold,
// sorted by confidence descending and truncated to the configured cap.
func (g *Gate) filterCandidates(detected []oracle.DetectedLanguage) []domain.LanguageCandidate {
	var out []domain.LanguageCandidate
	for _, d := range detected {
		if d.Confidence < g.cfg.MinConfidence {
			continue
		}
		out = append(out, domain.LanguageCandidate{
			Code:       d.Code,
			Name:       d.Name,
			Confidence: d.Confidence,
			IsGerman:   d.IsGerman,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	if len(out) > g.cfg.MaxLanguages {
		out = out[:g.cfg.MaxLanguages]
	}
	return out
}

// translateAll collects German candidates for every non-German language.
// The calls are mutually independent, so they run concurrently with fan-out
// bounded by the language cap; each goroutine owns its result slot and the
// merge happens after the group finishes, in confidence order.
func (g *Gate) translateAll(ctx context.Context, text string, langs []domain.LanguageCandidate) []Section {
	sections := make([]Section, len(langs))

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.MaxLanguages)

	for i, lang := range langs {
		i, lang := i, lang
		grp.Go(func() error {
			sections[i] = g.translateOne(grpCtx, text, lang)
			return nil
		})
	}

	// Goroutines never return errors; failures are recorded per section.
	_ = grp.Wait()

	return sections
}

// translateOne requests German translations for one source language,
// validates and caps them. A zero-accepted result triggers exactly one
// reinforced retry before the section gives up. Any failure degrades only
// this section.
func (g *Gate) translateOne(ctx context.Context, text string, lang domain.LanguageCandidate) Section {
	section := Section{Language: lang, Action: ActionNone}

	accepted, err := g.requestAccepted(ctx, text, lang.Code, false)
	if err == nil && len(accepted) == 0 {
		accepted, err = g.requestAccepted(ctx, text, lang.Code, true)
	}
	if err != nil {
		g.log.WarnContext(ctx, "translation degraded",
			slog.String("lang", lang.Code),
			slog.String("error", err.Error()),
		)
		section.Degraded = true
		return section
	}

	accepted = dedupeCandidates(accepted)
	if len(accepted) > g.cfg.MaxSenses {
		accepted = accepted[:g.cfg.MaxSenses]
	}
	section.Candidates = accepted

	switch len(accepted) {
	case 0:
		section.Action = ActionNone
	case 1:
		section.Action = ActionLookUpDirectly
	default:
		section.Action = ActionPickThenLookUp
	}
	return section
}

// dedupeCandidates drops case-insensitive repeats of a surface form within
// one section, keeping the first occurrence. Repeats must not consume sense
// cap slots or duplicate choice options.
func dedupeCandidates(candidates []domain.TranslationCandidate) []domain.TranslationCandidate {
	if len(candidates) < 2 {
		return candidates
	}
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		key := domain.BucketKey(c.GermanWord)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// requestAccepted issues one translation call and keeps only candidates
// passing exonym correction and the German-form heuristic.
func (g *Gate) requestAccepted(ctx context.Context, text, langCode string, reinforced bool) ([]domain.TranslationCandidate, error) {
	result, err := g.oracle.TranslateToGerman(ctx, text, langCode, reinforced)
	if err != nil {
		return nil, err
	}

	var accepted []domain.TranslationCandidate
	for _, t := range result.Translations {
		word, ok := ValidateGermanWord(t.GermanWord)
		if !ok {
			g.log.DebugContext(ctx, "translation candidate rejected",
				slog.String("lang", langCode),
				slog.String("word", t.GermanWord),
			)
			continue
		}
		accepted = append(accepted, domain.TranslationCandidate{
			GermanWord:   word,
			Context:      strings.TrimSpace(t.Context),
			PartOfSpeech: t.PartOfSpeech,
			SourceLang:   langCode,
		})
	}
	return accepted, nil
}
