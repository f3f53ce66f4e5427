// Package rest exposes the resolver over plain HTTP+JSON.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/config"
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/transport/middleware"
)

// NewRouter wires all REST endpoints behind the shared middleware chain.
func NewRouter(logger *slog.Logger, cfg config.CORSConfig, resolve *ResolveHandler, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/resolve", resolve.Resolve)
	mux.HandleFunc("POST /v1/resolve/selection", resolve.Selection)

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /live", health.Live)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg),
	)
	return chain(mux)
}
