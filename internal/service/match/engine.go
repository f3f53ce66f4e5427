// Package match implements the cascading lexical match engine: an ordered
// sequence of lookup strategies run against the lexicon store, stopping at
// the first strategy that yields anything. Cheap exact checks run first;
// compound-boundary matching runs last among the deterministic strategies as
// the most false-positive-prone, and the Oracle-assisted fallback only fires
// when every deterministic strategy came up empty.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/oracle"
)

// minCompoundLen gates compound-boundary matching: shorter queries produce
// too many spurious prefix/suffix hits.
const minCompoundLen = 6

// typoScoreFloor separates "looks like a misspelling of a suggestion" from
// "unrelated word" when phrasing the not-found message.
const typoScoreFloor = 0.5

// articleTokens are the German articles recognized by the article-stripped
// strategy. The query must start with one of these followed by a space.
var articleTokens = map[string]struct{}{
	"der": {}, "die": {}, "das": {},
	"ein": {}, "eine": {}, "einen": {}, "einem": {}, "einer": {},
}

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type lexiconStore interface {
	GetByExactLemma(ctx context.Context, lemma string) ([]domain.LexiconEntry, error)
	GetByInflectedForm(ctx context.Context, formNormalized string) (*domain.LexiconEntry, error)
	GetByLemmaFold(ctx context.Context, lemmaNormalized string) (*domain.LexiconEntry, error)
	GetByPrefix(ctx context.Context, prefixNormalized string) (*domain.LexiconEntry, error)
	GetBySuffix(ctx context.Context, suffixNormalized string) (*domain.LexiconEntry, error)
	Create(ctx context.Context, entry *domain.LexiconEntry) (*domain.LexiconEntry, error)
}

type wordAnalyzer interface {
	AnalyzeWord(ctx context.Context, text string) (*oracle.WordAnalysis, error)
}

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// strategy is one step of the cascade. attempt returns (nil, nil) when the
// strategy has nothing for this query.
type strategy struct {
	name    Strategy
	attempt func(ctx context.Context, query string) (*Result, error)
}

// Engine runs the ordered strategy cascade against the lexicon store.
type Engine struct {
	log        *slog.Logger
	store      lexiconStore
	analyzer   wordAnalyzer
	strategies []strategy
}

// NewEngine creates the match engine with the fixed strategy order.
func NewEngine(logger *slog.Logger, store lexiconStore, analyzer wordAnalyzer) *Engine {
	e := &Engine{
		log:      logger.With("service", "match"),
		store:    store,
		analyzer: analyzer,
	}
	e.strategies = []strategy{
		{StrategyDirectLemma, e.directLemma},
		{StrategyInflectedForm, e.inflectedForm},
		{StrategyArticleStripped, e.articleStripped},
		{StrategyCompoundBoundary, e.compoundBoundary},
		{StrategyCaseVariation, e.caseVariation},
	}
	return e
}

// Resolve runs the cascade for one query. The first strategy with any result
// wins; reads are all side-effect free, so a failed resolution leaves no
// trace. When every deterministic strategy misses, the Oracle-assisted
// fallback either persists a newly validated word or produces a terminal
// not-found with suggestions.
func (e *Engine) Resolve(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("query", "must not be empty")
	}

	for _, s := range e.strategies {
		res, err := s.attempt(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", s.name, err)
		}
		if res != nil {
			res.Strategy = s.name
			e.log.DebugContext(ctx, "match hit",
				slog.String("query", query),
				slog.String("strategy", string(s.name)),
				slog.String("kind", string(res.Kind)),
			)
			return res, nil
		}
	}

	return e.oracleFallback(ctx, query)
}

// ---------------------------------------------------------------------------
// Deterministic strategies
// ---------------------------------------------------------------------------

// directLemma matches the query's case variants against lemmas exactly.
// Homographs (distinct entries sharing a surface form) produce a multiple
// match for an explicit tie-break — never a silent pick.
func (e *Engine) directLemma(ctx context.Context, query string) (*Result, error) {
	seen := make(map[string]struct{})
	var entries []domain.LexiconEntry

	for _, v := range CaseVariants(query) {
		found, err := e.store.GetByExactLemma(ctx, v)
		if err != nil {
			return nil, err
		}
		for _, entry := range found {
			key := entry.ID.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, entry)
		}
	}

	switch len(entries) {
	case 0:
		return nil, nil
	case 1:
		return &Result{Kind: KindSingle, Entry: &entries[0]}, nil
	default:
		return &Result{Kind: KindMultiple, Entries: entries}, nil
	}
}

// inflectedForm matches the query case-insensitively against stored
// inflected and derived forms, returning the owning lemma.
func (e *Engine) inflectedForm(ctx context.Context, query string) (*Result, error) {
	entry, err := e.store.GetByInflectedForm(ctx, domain.NormalizeText(query))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindSingle, Entry: entry}, nil
}

// articleStripped retries the lookup without a leading German article.
// No-op unless the query starts with a recognized article token plus space.
func (e *Engine) articleStripped(ctx context.Context, query string) (*Result, error) {
	first, rest, ok := strings.Cut(query, " ")
	if !ok {
		return nil, nil
	}
	if _, isArticle := articleTokens[strings.ToLower(first)]; !isArticle {
		return nil, nil
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, nil
	}

	entry, err := e.store.GetByLemmaFold(ctx, domain.NormalizeText(rest))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindSingle, Entry: entry}, nil
}

// compoundBoundary matches lemmas that start or end with the query at a word
// boundary. Mid-word substrings are never attempted, and short queries are
// skipped entirely.
func (e *Engine) compoundBoundary(ctx context.Context, query string) (*Result, error) {
	if utf8.RuneCountInString(query) < minCompoundLen {
		return nil, nil
	}

	normalized := domain.NormalizeText(query)

	entry, err := e.store.GetByPrefix(ctx, normalized)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if entry == nil {
		entry, err = e.store.GetBySuffix(ctx, normalized)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return &Result{Kind: KindSingle, Entry: entry}, nil
}

// caseVariation is the case-insensitive lemma match for casings not already
// covered by the direct-lemma variants.
func (e *Engine) caseVariation(ctx context.Context, query string) (*Result, error) {
	entry, err := e.store.GetByLemmaFold(ctx, domain.NormalizeText(query))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindSingle, Entry: entry}, nil
}

// ---------------------------------------------------------------------------
// Oracle-assisted fallback
// ---------------------------------------------------------------------------

// oracleFallback delegates to word analysis when the whole deterministic
// cascade missed. A validated word (including a typo correction) is persisted
// as a new lexicon entry; anything else terminates in a not-found with
// suggestions ranked for display.
func (e *Engine) oracleFallback(ctx context.Context, query string) (*Result, error) {
	analysis, err := e.analyzer.AnalyzeWord(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", StrategyOracleFallback, err)
	}

	if !analysis.Found {
		return e.notFound(query, analysis), nil
	}

	lemma := analysis.Lemma
	if lemma == "" {
		lemma = query
	}

	entry := &domain.LexiconEntry{
		Lemma:        lemma,
		PartOfSpeech: domain.ParsePartOfSpeech(analysis.POS),
	}
	for i, gloss := range analysis.Translations {
		entry.Translations = append(entry.Translations, domain.Translation{
			LangCode: "en",
			Text:     gloss,
			Position: i,
		})
	}
	if analysis.Example != "" {
		entry.Examples = append(entry.Examples, domain.Example{Sentence: analysis.Example})
	}

	created, err := e.store.Create(ctx, entry)
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Benign insert race: another resolution persisted the same lemma
		// first. Re-read instead of erroring.
		created, err = e.store.GetByLemmaFold(ctx, domain.NormalizeText(lemma))
	}
	if err != nil {
		return nil, fmt.Errorf("persist validated word %q: %w", lemma, err)
	}

	e.log.InfoContext(ctx, "new lexicon entry from word analysis",
		slog.String("query", query),
		slog.String("lemma", created.Lemma),
		slog.String("pos", created.PartOfSpeech.String()),
		slog.Bool("typo_corrected", analysis.CorrectedFrom != ""),
	)

	return &Result{Kind: KindSingle, Strategy: StrategyOracleFallback, Entry: created}, nil
}

// notFound builds the terminal not-found result, ranking Oracle suggestions
// by similarity to the query. The message distinguishes a likely typo from
// a word that is not German at all.
func (e *Engine) notFound(query string, analysis *oracle.WordAnalysis) *Result {
	suggestions := make([]RankedSuggestion, 0, len(analysis.Suggestions))
	for _, s := range analysis.Suggestions {
		suggestions = append(suggestions, RankedSuggestion{
			Word:    s.Word,
			POS:     s.POS,
			Meaning: s.Meaning,
			Score:   Similarity(strings.ToLower(query), strings.ToLower(s.Word)),
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	message := fmt.Sprintf("%q does not appear to be a German word; here are related words you can look up", query)
	if len(suggestions) > 0 && suggestions[0].Score >= typoScoreFloor {
		message = fmt.Sprintf("no entry for %q, it looks like a misspelling; did you mean one of these?", query)
	}

	return &Result{
		Kind:        KindNotFound,
		Strategy:    StrategyOracleFallback,
		Suggestions: suggestions,
		Message:     message,
	}
}
