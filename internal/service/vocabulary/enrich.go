package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/vocab-export/internal/domain"
)

// Enrich produces one record per word, in input order. Words are processed
// strictly one after another. A word whose enrichment panics gets an error
// record and the run continues; only a cancelled context aborts the run.
func (s *Service) Enrich(ctx context.Context, words []domain.WordRecord) ([]domain.EnrichedRecord, error) {
	start := time.Now()
	records := make([]domain.EnrichedRecord, 0, len(words))
	failed := 0

	for i, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enrich: stopped at word %d of %d: %w", i+1, len(words), err)
		}
		if i > 0 && s.wordDelay > 0 {
			if err := sleep(ctx, s.wordDelay); err != nil {
				return nil, fmt.Errorf("enrich: stopped at word %d of %d: %w", i+1, len(words), err)
			}
		}

		rec, err := s.enrichWord(ctx, w.Word)
		if err != nil {
			failed++
			s.log.ErrorContext(ctx, "word enrichment failed",
				slog.String("word", w.Word),
				slog.String("error", err.Error()),
			)
			rec = domain.ErrorRecord(w.Word, err.Error())
		}
		records = append(records, rec)

		s.log.DebugContext(ctx, "word enriched",
			slog.Int("index", i+1),
			slog.Int("total", len(words)),
			slog.String("word", w.Word),
		)
	}

	s.log.InfoContext(ctx, "enrichment complete",
		slog.Int("words", len(words)),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}

// enrichWord fetches and translates a single word. A panic in any step is
// converted into an error.
func (s *Service) enrichWord(ctx context.Context, word string) (rec domain.EnrichedRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	def := s.source.Fetch(ctx, word)

	var combined string
	if example := strings.TrimSpace(def.Example); example != "" {
		translated := s.translator.Translate(ctx, example)
		combined = domain.CombineExample(example, translated)
	}

	meaningVI := s.translator.Translate(ctx, def.Meaning)

	return domain.EnrichedRecord{
		Word:            word,
		MeaningEN:       def.Meaning,
		MeaningVI:       meaningVI,
		Example:         def.Example,
		ExampleCombined: combined,
		IPA:             def.IPA,
		POS:             def.PartOfSpeech,
	}, nil
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
