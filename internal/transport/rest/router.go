package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/vocab-export/internal/transport/middleware"
)

// NewRouter registers every route and wraps the mux in the middleware chain
// Recovery → RequestID → Logger.
func NewRouter(logger *slog.Logger, vocab *VocabularyHandler, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", Index)
	mux.HandleFunc("GET /api", APIRoot)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("POST /upload-vocabulary/", vocab.Upload)
	mux.HandleFunc("POST /process-vocabulary/", vocab.Process)
	mux.HandleFunc("POST /export-csv/", vocab.Export)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
	)(mux)
}
