package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// FailureValue is returned in place of a translation whenever the backend
// fails. Every caller sees the same value.
func FailureValue(text string) string {
	return "Translation error: " + text
}

type outcome struct {
	text string
	err  error
}

// Translate returns the translation of text. Empty or whitespace-only input
// returns "" without calling the backend. Failures return FailureValue(text).
func (s *Service) Translate(ctx context.Context, text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	translated, err := s.run(ctx, trimmed)
	if err != nil {
		s.log.WarnContext(ctx, "translation failed",
			slog.Int("chars", len(trimmed)),
			slog.String("error", err.Error()),
		)
		return FailureValue(text)
	}
	return translated
}

// TranslateBatch translates texts one at a time, pausing between items to
// stay under upstream rate limits. The result has one entry per input.
func (s *Service) TranslateBatch(ctx context.Context, texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		if i > 0 && s.batchDelay > 0 {
			if err := sleep(ctx, s.batchDelay); err != nil {
				for j := i; j < len(texts); j++ {
					if strings.TrimSpace(texts[j]) != "" {
						out[j] = FailureValue(texts[j])
					}
				}
				return out
			}
		}
		out[i] = s.Translate(ctx, text)
	}
	return out
}

// run submits one backend call to the pool and waits for it.
func (s *Service) run(ctx context.Context, text string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan outcome, 1)
	err := s.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("backend panic: %v", r)}
			}
		}()
		translated, err := s.backend.Translate(ctx, text)
		done <- outcome{text: translated, err: err}
	})
	if err != nil {
		return "", fmt.Errorf("submit: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case o := <-done:
		if o.err != nil {
			return "", o.err
		}
		if strings.TrimSpace(o.text) == "" {
			return "", errors.New("empty translation")
		}
		return o.text, nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
