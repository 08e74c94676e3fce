package vocabulary

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocab-export/internal/config"
	"github.com/heartmarshall/vocab-export/internal/provider"
)

// ---------------------------------------------------------------------------
// Capability interfaces
// ---------------------------------------------------------------------------

// DefinitionSource looks a word up. It never fails; misses come back as
// placeholder results.
type DefinitionSource interface {
	Fetch(ctx context.Context, word string) provider.DefinitionResult
}

// TextTranslator translates text. It never fails; failures come back as a
// degraded string.
type TextTranslator interface {
	Translate(ctx context.Context, text string) string
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs the enrichment pipeline over a word list.
type Service struct {
	log        *slog.Logger
	source     DefinitionSource
	translator TextTranslator
	wordDelay  time.Duration
}

// NewService creates a new Vocabulary service.
func NewService(
	logger *slog.Logger,
	source DefinitionSource,
	translator TextTranslator,
	cfg config.EnrichConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "vocabulary"),
		source:     source,
		translator: translator,
		wordDelay:  cfg.WordDelay,
	}
}
