// Package app wires configuration, logging, storage, the Oracle client, and
// the services into a running HTTP server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql (goose)
	"github.com/pressly/goose/v3"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/adapter/oracle/claude"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/adapter/postgres"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/adapter/postgres/lexeme"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/config"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/service/disambig"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/service/match"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/service/resolver"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/transport/rest"
)

// migrationsDir is where goose migrations live, relative to the working
// directory of the server process.
const migrationsDir = "migrations"

// Run is the application entry point. It blocks until ctx is canceled, then
// shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	lexemes := lexeme.New(pool, txm)

	oracleClient := claude.New(logger, cfg.Oracle)

	engine := match.NewEngine(logger, lexemes, oracleClient)
	gate := disambig.NewGate(logger, oracleClient, cfg.Gate)
	resolverSvc := resolver.NewService(logger, engine, gate, lexemes)

	resolveHandler := rest.NewResolveHandler(logger, resolverSvc)
	healthHandler := rest.NewHealthHandler(lexemes, BuildVersion())
	router := rest.NewRouter(logger, cfg.CORS, resolveHandler, healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// migrate applies pending goose migrations. goose requires database/sql, so
// a short-lived separate connection is used.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(migrationsDir))
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
