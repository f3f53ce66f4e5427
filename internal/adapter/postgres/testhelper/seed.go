package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedLexeme creates a lexeme with the given lemma and POS, two English
// translations, one example, and the given inflected forms. Returns the
// fully populated entry.
func SeedLexeme(t *testing.T, pool *pgxpool.Pool, lemma string, pos domain.PartOfSpeech, forms ...domain.InflectedForm) domain.LexiconEntry {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := domain.LexiconEntry{
		ID:           uuid.New(),
		Lemma:        lemma,
		PartOfSpeech: pos,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO lexemes (id, lemma, lemma_normalized, part_of_speech, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Lemma, domain.NormalizeText(entry.Lemma), entry.PartOfSpeech.String(), entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLexeme insert lexeme: %v", err)
	}

	entry.Translations = make([]domain.Translation, 2)
	for i := 0; i < 2; i++ {
		tr := domain.Translation{
			ID:       uuid.New(),
			EntryID:  entry.ID,
			LangCode: "en",
			Text:     "translation " + suffix + "-" + string(rune('1'+i)),
			Position: i,
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO lexeme_translations (id, lexeme_id, lang_code, text, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			tr.ID, tr.EntryID, tr.LangCode, tr.Text, tr.Position,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedLexeme insert translation[%d]: %v", i, err)
		}
		entry.Translations[i] = tr
	}

	ex := domain.Example{
		ID:       uuid.New(),
		EntryID:  entry.ID,
		Sentence: "Beispielsatz " + suffix,
		Position: 0,
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO lexeme_examples (id, lexeme_id, sentence, translation, position)
		 VALUES ($1, $2, $3, $4, $5)`,
		ex.ID, ex.EntryID, ex.Sentence, ex.Translation, ex.Position,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLexeme insert example: %v", err)
	}
	entry.Examples = []domain.Example{ex}

	for i, f := range forms {
		f.ID = uuid.New()
		f.EntryID = entry.ID
		f.Position = i
		_, err := pool.Exec(ctx,
			`INSERT INTO lexeme_forms (id, lexeme_id, form, form_normalized, feature_key, feature_value, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			f.ID, f.EntryID, f.Form, domain.NormalizeText(f.Form), f.FeatureKey, f.FeatureValue, f.Position,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedLexeme insert form[%d]: %v", i, err)
		}
		entry.Forms = append(entry.Forms, f)
	}

	return entry
}
