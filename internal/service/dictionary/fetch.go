package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/vocab-export/internal/domain"
	"github.com/heartmarshall/vocab-export/internal/provider"
)

// Fetch returns the definition of word. It never fails: when both sources
// fail, or anything panics, the "unable to fetch" placeholder is returned.
// Sources are queried with the normalized word; placeholder meanings name
// the word as the caller wrote it.
func (s *Service) Fetch(ctx context.Context, word string) (result provider.DefinitionResult) {
	display := strings.TrimSpace(word)
	normalized := domain.NormalizeText(word)

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "definition fetch panicked",
				slog.String("word", normalized),
				slog.Any("panic", r),
			)
			result = provider.Unavailable(display)
		}
	}()

	if normalized == "" {
		return provider.Unavailable(display)
	}

	res, err := s.fetchPrimary(ctx, normalized)
	if err == nil {
		return relabel(res, normalized, display)
	}
	s.log.DebugContext(ctx, "primary source failed, trying fallback",
		slog.String("word", normalized),
		slog.String("source", s.primary.Name()),
		slog.String("error", err.Error()),
	)

	res, fbErr := s.fallback.FetchDefinition(ctx, normalized)
	if fbErr == nil {
		return relabel(res, normalized, display)
	}

	s.log.WarnContext(ctx, "definition unavailable",
		slog.String("word", normalized),
		slog.String("primary_error", err.Error()),
		slog.String("fallback_error", fbErr.Error()),
	)
	return provider.Unavailable(display)
}

// relabel rewrites a source's placeholder meaning, which names the lookup
// key, so that it names the displayed word instead.
func relabel(res provider.DefinitionResult, lookup, display string) provider.DefinitionResult {
	if lookup == display {
		return res
	}
	switch res.Meaning {
	case provider.NotFoundMeaning(lookup):
		res.Meaning = provider.NotFoundMeaning(display)
	case provider.ParseErrorMeaning(lookup):
		res.Meaning = provider.ParseErrorMeaning(display)
	}
	return res
}

func (s *Service) fetchPrimary(ctx context.Context, word string) (provider.DefinitionResult, error) {
	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.primary.FetchDefinition(ctx, word)
	})
	if err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("%s: %w", s.primary.Name(), err)
	}
	res, ok := out.(provider.DefinitionResult)
	if !ok {
		return provider.DefinitionResult{}, fmt.Errorf("%s: unexpected result type %T", s.primary.Name(), out)
	}
	return res, nil
}

// sourceHealthy reports whether err leaves the source's health intact for
// the breaker. A 404 means the word is missing, not that the source is down;
// a cancelled caller says nothing about the source either.
func sourceHealthy(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *provider.HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return true
	}
	return false
}
