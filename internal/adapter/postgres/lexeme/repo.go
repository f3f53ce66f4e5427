// Package lexeme implements the lexicon store using PostgreSQL. Fixed-shape
// reads use raw SQL consts; queries with dynamic row counts (entry creation,
// enrichment appends, variant lookups) are built with squirrel.
package lexeme

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/adapter/postgres"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// qb builds queries with PostgreSQL $n placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new lexeme repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// ---------------------------------------------------------------------------
// Raw SQL for fixed-shape reads
// ---------------------------------------------------------------------------

const lexemeCols = `l.id, l.lemma, l.part_of_speech, l.cefr_level, l.created_at, l.updated_at`

const getByExactLemmaSQL = `
SELECT ` + lexemeCols + `
FROM lexemes l
WHERE l.lemma = $1
ORDER BY l.part_of_speech`

const getByIDSQL = `
SELECT ` + lexemeCols + `
FROM lexemes l
WHERE l.id = $1`

const getByLemmaFoldSQL = `
SELECT ` + lexemeCols + `
FROM lexemes l
WHERE l.lemma_normalized = $1
ORDER BY l.created_at
LIMIT 1`

const getByInflectedFormSQL = `
SELECT ` + lexemeCols + `
FROM lexemes l
JOIN lexeme_forms f ON f.lexeme_id = l.id
WHERE f.form_normalized = $1
ORDER BY f.position
LIMIT 1`

// Compound lookups exclude the exact form itself (that is direct-lemma
// territory) and prefer the shortest containing lemma.

const getByPrefixSQL = `
SELECT ` + lexemeCols + `
FROM lexemes l
WHERE l.lemma_normalized LIKE $1 || '%'
  AND l.lemma_normalized <> $1
ORDER BY length(l.lemma_normalized), l.lemma_normalized
LIMIT 1`

const getBySuffixSQL = `
SELECT ` + lexemeCols + `
FROM lexemes l
WHERE reverse(l.lemma_normalized) LIKE reverse($1) || '%'
  AND l.lemma_normalized <> $1
ORDER BY length(l.lemma_normalized), l.lemma_normalized
LIMIT 1`

const getTranslationsSQL = `
SELECT id, lexeme_id, lang_code, text, position
FROM lexeme_translations
WHERE lexeme_id = ANY($1::uuid[])
ORDER BY lexeme_id, lang_code, position`

const getExamplesSQL = `
SELECT id, lexeme_id, sentence, translation, position
FROM lexeme_examples
WHERE lexeme_id = ANY($1::uuid[])
ORDER BY lexeme_id, position`

const getFormsSQL = `
SELECT id, lexeme_id, form, feature_key, feature_value, position
FROM lexeme_forms
WHERE lexeme_id = ANY($1::uuid[])
ORDER BY lexeme_id, position`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByExactLemma returns every entry whose lemma equals the given surface
// form exactly, fully hydrated. Homographs come back as multiple entries.
func (r *Repo) GetByExactLemma(ctx context.Context, lemma string) ([]domain.LexiconEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByExactLemmaSQL, lemma)
	if err != nil {
		return nil, fmt.Errorf("get lexemes by lemma: %w", err)
	}
	defer rows.Close()

	entries, err := scanLexemes(rows)
	if err != nil {
		return nil, fmt.Errorf("get lexemes by lemma: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	if err := r.loadChildren(ctx, querier, entries); err != nil {
		return nil, fmt.Errorf("get lexemes by lemma: %w", err)
	}
	return entries, nil
}

// GetByID returns one entry by its primary key, fully hydrated.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LexiconEntry, error) {
	return r.getOne(ctx, getByIDSQL, id.String())
}

// GetByInflectedForm returns the entry owning a stored inflected form,
// matched on the normalized form.
func (r *Repo) GetByInflectedForm(ctx context.Context, formNormalized string) (*domain.LexiconEntry, error) {
	return r.getOne(ctx, getByInflectedFormSQL, formNormalized)
}

// GetByLemmaFold returns one entry matched case-insensitively on the lemma.
func (r *Repo) GetByLemmaFold(ctx context.Context, lemmaNormalized string) (*domain.LexiconEntry, error) {
	return r.getOne(ctx, getByLemmaFoldSQL, lemmaNormalized)
}

// GetByPrefix returns the shortest lemma starting with the given normalized
// text, excluding an exact match.
func (r *Repo) GetByPrefix(ctx context.Context, prefixNormalized string) (*domain.LexiconEntry, error) {
	return r.getOne(ctx, getByPrefixSQL, prefixNormalized)
}

// GetBySuffix returns the shortest lemma ending with the given normalized
// text, excluding an exact match.
func (r *Repo) GetBySuffix(ctx context.Context, suffixNormalized string) (*domain.LexiconEntry, error) {
	return r.getOne(ctx, getBySuffixSQL, suffixNormalized)
}

func (r *Repo) getOne(ctx context.Context, sql, arg string) (*domain.LexiconEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, sql, arg)
	entry, err := scanLexemeRow(row)
	if err != nil {
		return nil, mapError(err, "lexeme", arg)
	}

	entries := []domain.LexiconEntry{*entry}
	if err := r.loadChildren(ctx, querier, entries); err != nil {
		return nil, fmt.Errorf("load lexeme children: %w", err)
	}
	return &entries[0], nil
}

// Ping verifies database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create persists a new entry with its translations, examples, and forms in
// one transaction. A (lemma, part_of_speech) collision surfaces as
// domain.ErrAlreadyExists so the caller can re-read instead of failing.
func (r *Repo) Create(ctx context.Context, entry *domain.LexiconEntry) (*domain.LexiconEntry, error) {
	created := *entry

	err := r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		querier := postgres.QuerierFromCtx(txCtx, r.pool)

		insert := qb.Insert("lexemes").
			Columns("lemma", "lemma_normalized", "part_of_speech", "cefr_level").
			Values(entry.Lemma, domain.NormalizeText(entry.Lemma), entry.PartOfSpeech.String(), entry.CEFRLevel).
			Suffix("RETURNING id, created_at, updated_at")
		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build lexeme insert: %w", err)
		}

		if err := querier.QueryRow(txCtx, sql, args...).
			Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return mapError(err, "lexeme", entry.Lemma)
		}

		if err := insertTranslations(txCtx, querier, created.ID, entry.Translations); err != nil {
			return err
		}
		for i := range created.Translations {
			created.Translations[i].EntryID = created.ID
		}

		if len(entry.Examples) > 0 {
			ins := qb.Insert("lexeme_examples").Columns("lexeme_id", "sentence", "translation", "position")
			for i, ex := range entry.Examples {
				ins = ins.Values(created.ID, ex.Sentence, ex.Translation, i)
			}
			if err := execInsert(txCtx, querier, ins, "lexeme examples"); err != nil {
				return err
			}
			for i := range created.Examples {
				created.Examples[i].EntryID = created.ID
			}
		}

		if len(entry.Forms) > 0 {
			ins := qb.Insert("lexeme_forms").Columns("lexeme_id", "form", "form_normalized", "feature_key", "feature_value", "position")
			for i, f := range entry.Forms {
				ins = ins.Values(created.ID, f.Form, domain.NormalizeText(f.Form), f.FeatureKey, f.FeatureValue, i)
			}
			if err := execInsert(txCtx, querier, ins, "lexeme forms"); err != nil {
				return err
			}
			for i := range created.Forms {
				created.Forms[i].EntryID = created.ID
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// AddTranslations appends translations to an existing entry. Duplicates of
// already stored (lang, text) pairs are silently skipped, so enrichment is
// idempotent.
func (r *Repo) AddTranslations(ctx context.Context, entryID uuid.UUID, translations []domain.Translation) error {
	if len(translations) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ins := qb.Insert("lexeme_translations").
		Columns("lexeme_id", "lang_code", "text", "position").
		Suffix("ON CONFLICT (lexeme_id, lang_code, text) DO NOTHING")
	for _, t := range translations {
		ins = ins.Values(entryID, t.LangCode, t.Text, t.Position)
	}

	if err := execInsert(ctx, querier, ins, "lexeme translations"); err != nil {
		return mapError(err, "lexeme", entryID.String())
	}
	return nil
}

func insertTranslations(ctx context.Context, querier postgres.Querier, lexemeID uuid.UUID, translations []domain.Translation) error {
	if len(translations) == 0 {
		return nil
	}
	ins := qb.Insert("lexeme_translations").Columns("lexeme_id", "lang_code", "text", "position")
	for i, t := range translations {
		ins = ins.Values(lexemeID, t.LangCode, t.Text, i)
	}
	return execInsert(ctx, querier, ins, "lexeme translations")
}

func execInsert(ctx context.Context, querier postgres.Querier, ins squirrel.InsertBuilder, what string) error {
	sql, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", what, err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Hydration
// ---------------------------------------------------------------------------

// loadChildren fills translations, examples, and forms for the given entries
// with one query per child table.
func (r *Repo) loadChildren(ctx context.Context, querier postgres.Querier, entries []domain.LexiconEntry) error {
	ids := make([]uuid.UUID, len(entries))
	byID := make(map[uuid.UUID]*domain.LexiconEntry, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
		byID[entries[i].ID] = &entries[i]
	}

	rows, err := querier.Query(ctx, getTranslationsSQL, ids)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	for rows.Next() {
		var t domain.Translation
		if err := rows.Scan(&t.ID, &t.EntryID, &t.LangCode, &t.Text, &t.Position); err != nil {
			rows.Close()
			return fmt.Errorf("scan translation: %w", err)
		}
		byID[t.EntryID].Translations = append(byID[t.EntryID].Translations, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	rows, err = querier.Query(ctx, getExamplesSQL, ids)
	if err != nil {
		return fmt.Errorf("load examples: %w", err)
	}
	for rows.Next() {
		var ex domain.Example
		if err := rows.Scan(&ex.ID, &ex.EntryID, &ex.Sentence, &ex.Translation, &ex.Position); err != nil {
			rows.Close()
			return fmt.Errorf("scan example: %w", err)
		}
		byID[ex.EntryID].Examples = append(byID[ex.EntryID].Examples, ex)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load examples: %w", err)
	}

	rows, err = querier.Query(ctx, getFormsSQL, ids)
	if err != nil {
		return fmt.Errorf("load forms: %w", err)
	}
	for rows.Next() {
		var f domain.InflectedForm
		if err := rows.Scan(&f.ID, &f.EntryID, &f.Form, &f.FeatureKey, &f.FeatureValue, &f.Position); err != nil {
			rows.Close()
			return fmt.Errorf("scan form: %w", err)
		}
		byID[f.EntryID].Forms = append(byID[f.EntryID].Forms, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load forms: %w", err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanLexemes(rows pgx.Rows) ([]domain.LexiconEntry, error) {
	var entries []domain.LexiconEntry
	for rows.Next() {
		var e domain.LexiconEntry
		var pos string
		if err := rows.Scan(&e.ID, &e.Lemma, &pos, &e.CEFRLevel, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lexeme: %w", err)
		}
		e.PartOfSpeech = domain.PartOfSpeech(pos)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func scanLexemeRow(row pgx.Row) (*domain.LexiconEntry, error) {
	var e domain.LexiconEntry
	var pos string
	if err := row.Scan(&e.ID, &e.Lemma, &pos, &e.CEFRLevel, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.PartOfSpeech = domain.PartOfSpeech(pos)
	return &e, nil
}

// mapError converts pgx errors to domain errors. Context cancellation passes
// through untouched.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %q: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrAlreadyExists)
		case pgErr.Code == "23503": // foreign_key_violation
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrNotFound)
		case pgErr.Code == "23514": // check_violation
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrValidation)
		case strings.HasPrefix(pgErr.Code, "08"): // connection_exception class
			return fmt.Errorf("%s %q: %v: %w", entity, key, err, domain.ErrStoreUnavailable)
		}
	}

	// Dial and transport failures never reach the server, so they carry no
	// SQLSTATE; recognize them by shape.
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%s %q: %v: %w", entity, key, err, domain.ErrStoreUnavailable)
	}

	return fmt.Errorf("%s %q: %w", entity, key, err)
}
