package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/vocab-export/internal/config"
	"github.com/heartmarshall/vocab-export/internal/transport/rest"
)

// NewHandler builds the HTTP handler serving every route.
func NewHandler(c *Components, cfg *config.Config, logger *slog.Logger) http.Handler {
	vocab := rest.NewVocabularyHandler(c.Vocabulary, c.Export, cfg.Server.MaxUploadBytes, logger)
	health := rest.NewHealthHandler(c.Dictionary, BuildVersion())
	return rest.NewRouter(logger, vocab, health)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully within the configured shutdown timeout.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	components, err := Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build components: %w", err)
	}
	defer components.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(components, cfg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	logger.Info("starting server",
		slog.String("addr", srv.Addr),
		slog.String("version", BuildVersion()),
		slog.String("translate_backend", cfg.Translate.Backend),
		slog.String("target_language", cfg.Translate.Target),
		slog.Bool("debug", cfg.Server.Debug),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
