package wordlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// entryCreator is the repository surface the importer needs.
type entryCreator interface {
	Create(ctx context.Context, entry *domain.LexiconEntry) (*domain.LexiconEntry, error)
}

// Stats summarizes one import run.
type Stats struct {
	Created  int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Importer writes parsed wordlist records into the lexicon. Records whose
// lemma and part of speech already exist are skipped, so re-running the
// same wordlist is idempotent.
type Importer struct {
	log    *slog.Logger
	repo   entryCreator
	dryRun bool
}

func NewImporter(log *slog.Logger, repo entryCreator, dryRun bool) *Importer {
	return &Importer{
		log:    log.With("service", "wordlist_importer"),
		repo:   repo,
		dryRun: dryRun,
	}
}

// Run imports all records. Individual record failures are counted and
// logged without aborting the run; context cancellation aborts it.
func (i *Importer) Run(ctx context.Context, records []Record) (Stats, error) {
	start := time.Now()
	var stats Stats

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("import aborted: %w", err)
		}

		if i.dryRun {
			stats.Created++
			continue
		}

		_, err := i.repo.Create(ctx, entryFromRecord(rec))
		switch {
		case err == nil:
			stats.Created++
		case errors.Is(err, domain.ErrAlreadyExists):
			i.log.DebugContext(ctx, "lemma already present, skipping",
				slog.String("lemma", rec.Lemma),
				slog.String("pos", rec.PartOfSpeech.String()))
			stats.Skipped++
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("import aborted: %w", err)
		default:
			i.log.WarnContext(ctx, "failed to import lemma",
				slog.String("lemma", rec.Lemma),
				slog.String("error", err.Error()))
			stats.Failed++
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

func entryFromRecord(rec Record) *domain.LexiconEntry {
	entry := &domain.LexiconEntry{
		Lemma:        rec.Lemma,
		PartOfSpeech: rec.PartOfSpeech,
		Forms:        rec.Forms,
	}

	for pos, text := range rec.Translations {
		entry.Translations = append(entry.Translations, domain.Translation{
			LangCode: "en",
			Text:     text,
			Position: pos,
		})
	}

	if rec.Example != "" {
		entry.Examples = append(entry.Examples, domain.Example{Sentence: rec.Example})
	}

	return entry
}
