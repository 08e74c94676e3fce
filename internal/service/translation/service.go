package translation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/heartmarshall/vocab-export/internal/config"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type backend interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service translates text into the configured target language. Backend
// calls run on a bounded worker pool shared by all requests; callers wait
// for the result or for their context.
type Service struct {
	log        *slog.Logger
	backend    backend
	pool       *ants.Pool
	timeout    time.Duration
	batchDelay time.Duration
}

// NewService creates a new Translation service. Close releases its pool.
func NewService(logger *slog.Logger, b backend, cfg config.TranslateConfig) (*Service, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(p interface{}) {
		logger.Error("translation worker panicked", slog.Any("panic", p))
	}))
	if err != nil {
		return nil, fmt.Errorf("translation: create pool: %w", err)
	}

	return &Service{
		log:        logger.With("service", "translation", "backend", b.Name()),
		backend:    b,
		pool:       pool,
		timeout:    cfg.Timeout,
		batchDelay: cfg.BatchDelay,
	}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}
