// Command server runs the word-resolution HTTP API.
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables.
// The process shuts down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
