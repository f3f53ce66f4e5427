package match

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/oracle"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockStore struct {
	GetByExactLemmaFunc   func(ctx context.Context, lemma string) ([]domain.LexiconEntry, error)
	GetByInflectedFunc    func(ctx context.Context, form string) (*domain.LexiconEntry, error)
	GetByLemmaFoldFunc    func(ctx context.Context, lemma string) (*domain.LexiconEntry, error)
	GetByPrefixFunc       func(ctx context.Context, prefix string) (*domain.LexiconEntry, error)
	GetBySuffixFunc       func(ctx context.Context, suffix string) (*domain.LexiconEntry, error)
	CreateFunc            func(ctx context.Context, entry *domain.LexiconEntry) (*domain.LexiconEntry, error)
	prefixCalls, sufCalls int
}

func (m *mockStore) GetByExactLemma(ctx context.Context, lemma string) ([]domain.LexiconEntry, error) {
	if m.GetByExactLemmaFunc != nil {
		return m.GetByExactLemmaFunc(ctx, lemma)
	}
	return nil, nil
}

func (m *mockStore) GetByInflectedForm(ctx context.Context, form string) (*domain.LexiconEntry, error) {
	if m.GetByInflectedFunc != nil {
		return m.GetByInflectedFunc(ctx, form)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetByLemmaFold(ctx context.Context, lemma string) (*domain.LexiconEntry, error) {
	if m.GetByLemmaFoldFunc != nil {
		return m.GetByLemmaFoldFunc(ctx, lemma)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetByPrefix(ctx context.Context, prefix string) (*domain.LexiconEntry, error) {
	m.prefixCalls++
	if m.GetByPrefixFunc != nil {
		return m.GetByPrefixFunc(ctx, prefix)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetBySuffix(ctx context.Context, suffix string) (*domain.LexiconEntry, error) {
	m.sufCalls++
	if m.GetBySuffixFunc != nil {
		return m.GetBySuffixFunc(ctx, suffix)
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) Create(ctx context.Context, entry *domain.LexiconEntry) (*domain.LexiconEntry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	created := *entry
	created.ID = uuid.New()
	return &created, nil
}

type mockAnalyzer struct {
	AnalyzeWordFunc func(ctx context.Context, text string) (*oracle.WordAnalysis, error)
	calls           int
}

func (m *mockAnalyzer) AnalyzeWord(ctx context.Context, text string) (*oracle.WordAnalysis, error) {
	m.calls++
	if m.AnalyzeWordFunc != nil {
		return m.AnalyzeWordFunc(ctx, text)
	}
	return &oracle.WordAnalysis{Found: false}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(store *mockStore, analyzer *mockAnalyzer) *Engine {
	return NewEngine(testLogger(), store, analyzer)
}

func testEntry(lemma string, pos domain.PartOfSpeech) domain.LexiconEntry {
	return domain.LexiconEntry{ID: uuid.New(), Lemma: lemma, PartOfSpeech: pos}
}

// ===========================================================================
// Tests
// ===========================================================================

func TestResolve_EmptyQuery(t *testing.T) {
	engine := newTestEngine(&mockStore{}, &mockAnalyzer{})

	_, err := engine.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolve_DirectLemma_Single(t *testing.T) {
	tisch := testEntry("Tisch", domain.PartOfSpeechNoun)
	store := &mockStore{
		GetByExactLemmaFunc: func(_ context.Context, lemma string) ([]domain.LexiconEntry, error) {
			if lemma == "Tisch" {
				return []domain.LexiconEntry{tisch}, nil
			}
			return nil, nil
		},
	}
	engine := newTestEngine(store, &mockAnalyzer{})

	res, err := engine.Resolve(context.Background(), "tisch")
	require.NoError(t, err)

	assert.Equal(t, KindSingle, res.Kind)
	assert.Equal(t, StrategyDirectLemma, res.Strategy)
	assert.Equal(t, tisch.ID, res.Entry.ID)
}

func TestResolve_DirectLemma_Homographs(t *testing.T) {
	// "See" the lake (der See) vs "See" the sea (die See): two lemma ids
	// sharing one surface form.
	lake := testEntry("See", domain.PartOfSpeechNoun)
	sea := testEntry("See", domain.PartOfSpeechNoun)
	store := &mockStore{
		GetByExactLemmaFunc: func(_ context.Context, lemma string) ([]domain.LexiconEntry, error) {
			if lemma == "See" {
				return []domain.LexiconEntry{lake, sea}, nil
			}
			return nil, nil
		},
	}
	engine := newTestEngine(store, &mockAnalyzer{})

	res, err := engine.Resolve(context.Background(), "See")
	require.NoError(t, err)

	assert.Equal(t, KindMultiple, res.Kind)
	assert.Equal(t, StrategyDirectLemma, res.Strategy)
	require.Len(t, res.Entries, 2, "one option per distinct lemma id")
	assert.NotEqual(t, res.Entries[0].ID, res.Entries[1].ID)
}

func TestResolve_DirectLemma_DedupesAcrossVariants(t *testing.T) {
	apfel := testEntry("Apfel", domain.PartOfSpeechNoun)
	store := &mockStore{
		// Same entry comes back for both "Apfel" and "apfel" variants.
		GetByExactLemmaFunc: func(_ context.Context, lemma string) ([]domain.LexiconEntry, error) {
			return []domain.LexiconEntry{apfel}, nil
		},
	}
	engine := newTestEngine(store, &mockAnalyzer{})

	res, err := engine.Resolve(context.Background(), "apfel")
	require.NoError(t, err)

	assert.Equal(t, KindSingle, res.Kind, "duplicate hits across variants collapse to one entry")
}

func TestResolve_InflectedForm(t *testing.T) {
	apfel := testEntry("Apfel", domain.PartOfSpeechNoun)
	store := &mockStore{
		GetByInflectedFunc: func(_ context.Context, form string) (*domain.LexiconEntry, error) {
			if form == "äpfel" {
				return &apfel, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	analyzer := &mockAnalyzer{}
	engine := newTestEngine(store, analyzer)

	res, err := engine.Resolve(context.Background(), "Äpfel")
	require.NoError(t, err)

	assert.Equal(t, KindSingle, res.Kind)
	assert.Equal(t, StrategyInflectedForm, res.Strategy)
	assert.Equal(t, "Apfel", res.Entry.Lemma)
	assert.Zero(t, store.prefixCalls, "compound matching never ran")
	assert.Zero(t, store.sufCalls)
	assert.Zero(t, analyzer.calls, "oracle never consulted")
}

func TestResolve_ArticleStripped(t *testing.T) {
	tisch := testEntry("Tisch", domain.PartOfSpeechNoun)
	store := &mockStore{
		GetByLemmaFoldFunc: func(_ context.Context, lemma string) (*domain.LexiconEntry, error) {
			if lemma == "tisch" {
				return &tisch, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	engine := newTestEngine(store, &mockAnalyzer{})

	res, err := engine.Resolve(context.Background(), "der Tisch")
	require.NoError(t, err)

	assert.Equal(t, KindSingle, res.Kind)
	assert.Equal(t, StrategyArticleStripped, res.Strategy)
	assert.Equal(t, tisch.ID, res.Entry.ID)

	// Resolving "Tisch" directly finds the same entry (via case variation
	// here, since the exact lookup is stubbed empty).
	direct, err := engine.Resolve(context.Background(), "Tisch")
	require.NoError(t, err)
	assert.Equal(t, res.Entry.ID, direct.Entry.ID)
}

func TestResolve_ArticleStripped_RequiresArticleAndSpace(t *testing.T) {
	foldCalls := 0
	store := &mockStore{
		GetByLemmaFoldFunc: func(_ context.Context, lemma string) (*domain.LexiconEntry, error) {
			foldCalls++
			return nil, domain.ErrNotFound
		},
	}
	engine := newTestEngine(store, &mockAnalyzer{})

	// "den" is not one of the eight recognized article tokens; "derTisch"
	// has no space. Both fall through the article strategy: the only fold
	// lookup each triggers is the later case-variation one.
	for _, q := range []string{"den Tisch", "derTisch"} {
		foldCalls = 0
		_, err := engine.Resolve(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, 1, foldCalls, "query %q: article strategy must not issue a lookup", q)
	}
}

func TestResolve_CompoundBoundary_LengthGate(t *testing.T) {
	store := &mockStore{}
	engine := newTestEngine(store, &mockAnalyzer{})

	// 5 runes: compound matching skipped.
	_, err := engine.Resolve(context.Background(), "Tisch")
	require.NoError(t, err)
	assert.Zero(t, store.prefixCalls)
	assert.Zero(t, store.sufCalls)

	// 6 runes: attempted.
	_, err = engine.Resolve(context.Background(), "Tische")
	require.NoError(t, err)
	assert.Equal(t, 1, store.prefixCalls)
	assert.Equal(t, 1, store.sufCalls)
}

func TestResolve_CompoundBoundary_PrefixWins(t *testing.T) {
	fussball := testEntry("Fußballspiel", domain.PartOfSpeechNoun)
	store := &mockStore{
		GetByPrefixFunc: func(_ context.Context, prefix string) (*domain.LexiconEntry, error) {
			if prefix == "fußball" {
				return &fussball, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	engine := newTestEngine(store, &mockAnalyzer{})

	res, err := engine.Resolve(context.Background(), "Fußball")
	require.NoError(t, err)

	assert.Equal(t, KindSingle, res.Kind)
	assert.Equal(t, StrategyCompoundBoundary, res.Strategy)
	assert.Zero(t, store.sufCalls, "suffix not tried after a prefix hit")
}

func TestResolve_OracleFallback_PersistsValidatedWord(t *testing.T) {
	var created *domain.LexiconEntry
	store := &mockStore{
		CreateFunc: func(_ context.Context, entry *domain.LexiconEntry) (*domain.LexiconEntry, error) {
			out := *entry
			out.ID = uuid.New()
			created = &out
			return &out, nil
		},
	}
	analyzer := &mockAnalyzer{
		AnalyzeWordFunc: func(_ context.Context, text string) (*oracle.WordAnalysis, error) {
			return &oracle.WordAnalysis{
				Found:         true,
				Lemma:         "Brot",
				POS:           "noun",
				Translations:  []string{"bread", "loaf"},
				Example:       "Ich esse Brot.",
				CorrectedFrom: "Brrot",
			}, nil
		},
	}
	engine := newTestEngine(store, analyzer)

	res, err := engine.Resolve(context.Background(), "Brrot")
	require.NoError(t, err)

	assert.Equal(t, KindSingle, res.Kind)
	assert.Equal(t, StrategyOracleFallback, res.Strategy)
	require.NotNil(t, created)
	assert.Equal(t, "Brot", created.Lemma)
	assert.Equal(t, domain.PartOfSpeechNoun, created.PartOfSpeech)
	require.Len(t, created.Translations, 2)
	assert.Equal(t, "en", created.Translations[0].LangCode)
	require.Len(t, created.Examples, 1)
}

func TestResolve_OracleFallback_InsertRaceRereads(t *testing.T) {
	existing := testEntry("Brot", domain.PartOfSpeechNoun)
	store := &mockStore{
		CreateFunc: func(_ context.Context, _ *domain.LexiconEntry) (*domain.LexiconEntry, error) {
			return nil, domain.ErrAlreadyExists
		},
		GetByLemmaFoldFunc: func(_ context.Context, lemma string) (*domain.LexiconEntry, error) {
			if lemma == "brot" {
				return &existing, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	analyzer := &mockAnalyzer{
		AnalyzeWordFunc: func(_ context.Context, _ string) (*oracle.WordAnalysis, error) {
			return &oracle.WordAnalysis{Found: true, Lemma: "Brot", POS: "NOUN"}, nil
		},
	}
	engine := newTestEngine(store, analyzer)

	res, err := engine.Resolve(context.Background(), "broot")
	require.NoError(t, err)

	assert.Equal(t, KindSingle, res.Kind)
	assert.Equal(t, existing.ID, res.Entry.ID, "race resolves to the winner's row")
}

func TestResolve_OracleFallback_NotFoundRankedSuggestions(t *testing.T) {
	analyzer := &mockAnalyzer{
		AnalyzeWordFunc: func(_ context.Context, _ string) (*oracle.WordAnalysis, error) {
			return &oracle.WordAnalysis{
				Found: false,
				Suggestions: []oracle.Suggestion{
					{Word: "Hund", POS: "NOUN", Meaning: "dog"},
					{Word: "Hunde", POS: "NOUN", Meaning: "dogs"},
					{Word: "Katze", POS: "NOUN", Meaning: "cat"},
				},
			}, nil
		},
	}
	engine := newTestEngine(&mockStore{}, analyzer)

	res, err := engine.Resolve(context.Background(), "Hunt")
	require.NoError(t, err)

	assert.Equal(t, KindNotFound, res.Kind)
	assert.NotEmpty(t, res.Message)
	require.Len(t, res.Suggestions, 3)
	assert.Equal(t, "Hund", res.Suggestions[0].Word, "closest suggestion ranked first")
	for i := 1; i < len(res.Suggestions); i++ {
		assert.GreaterOrEqual(t, res.Suggestions[i-1].Score, res.Suggestions[i].Score)
	}
}

func TestResolve_OracleFallback_ErrorPropagates(t *testing.T) {
	analyzer := &mockAnalyzer{
		AnalyzeWordFunc: func(_ context.Context, _ string) (*oracle.WordAnalysis, error) {
			return nil, domain.ErrOracleUnavailable
		},
	}
	engine := newTestEngine(&mockStore{}, analyzer)

	_, err := engine.Resolve(context.Background(), "irgendwas")
	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
}
