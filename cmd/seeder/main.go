// Command seeder populates the lexicon from a tab-separated wordlist file.
// It is intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--file     path to the wordlist file (required)
//	--dry-run  parse the wordlist without writing to DB
//
// Exit codes: 0 = success, 1 = error or any failed record.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/adapter/postgres"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/adapter/postgres/lexeme"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/app"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/config"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/seeder/wordlist"
)

func main() {
	fileFlag := flag.String("file", "", "path to the wordlist file")
	dryRunFlag := flag.Bool("dry-run", false, "parse the wordlist without writing to DB")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	f, err := os.Open(*fileFlag)
	if err != nil {
		logger.Error("open wordlist", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	records, parseErrs, err := wordlist.Parse(f)
	if err != nil {
		logger.Error("parse wordlist", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, pe := range parseErrs {
		logger.Warn("bad wordlist line", slog.String("error", pe.Error()))
	}
	logger.Info("wordlist parsed",
		slog.Int("records", len(records)),
		slog.Int("bad_lines", len(parseErrs)))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var repo *lexeme.Repo
	if !*dryRunFlag {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		repo = lexeme.New(pool, postgres.NewTxManager(pool))
	}

	importer := wordlist.NewImporter(logger, repo, *dryRunFlag)
	stats, err := importer.Run(ctx, records)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.Int("created", stats.Created),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
		slog.Duration("duration", stats.Duration))

	if stats.Failed > 0 || len(parseErrs) > 0 {
		os.Exit(1)
	}
}
