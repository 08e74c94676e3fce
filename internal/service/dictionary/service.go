package dictionary

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/heartmarshall/vocab-export/internal/config"
	"github.com/heartmarshall/vocab-export/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type definitionProvider interface {
	Name() string
	FetchDefinition(ctx context.Context, word string) (provider.DefinitionResult, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service looks words up in a primary source and falls back to a secondary
// one. The primary runs behind a circuit breaker.
type Service struct {
	log      *slog.Logger
	primary  definitionProvider
	fallback definitionProvider
	breaker  *gobreaker.CircuitBreaker
}

// NewService creates a new Dictionary service.
func NewService(
	logger *slog.Logger,
	primary definitionProvider,
	fallback definitionProvider,
	cfg config.DictionaryConfig,
) *Service {
	log := logger.With("service", "dictionary")

	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	openTimeout := cfg.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    primary.Name(),
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: sourceHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("dictionary breaker state changed",
				slog.String("source", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Service{
		log:      log,
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
	}
}

// PrimaryState reports the breaker state of the primary source.
func (s *Service) PrimaryState() string {
	return s.breaker.State().String()
}
