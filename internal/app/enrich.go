package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/vocab-export/internal/domain"
)

// EnrichFile runs the pipeline over the word list at inPath and writes the
// CSV export to out. With clean set the list is filtered and de-duplicated
// first.
func EnrichFile(ctx context.Context, c *Components, logger *slog.Logger, inPath string, out io.Writer, clean bool) (int, error) {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("read word list: %w", err)
	}

	words, err := domain.ParseWordList(content)
	if err != nil {
		return 0, fmt.Errorf("parse word list: %w", err)
	}
	if clean {
		words = domain.CleanRecords(words)
	}
	logger.Info("word list loaded", slog.String("path", inPath), slog.Int("count", len(words)))

	records, err := c.Vocabulary.Enrich(ctx, words)
	if err != nil {
		return 0, err
	}

	file, err := c.Export.Write(records)
	if err != nil {
		return 0, err
	}
	defer file.Remove() //nolint:errcheck

	f, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(out, f); err != nil {
		return 0, fmt.Errorf("copy export: %w", err)
	}
	return len(records), nil
}

// EnrichToPath runs EnrichFile and stores the CSV at outPath. The export is
// written to a temporary file next to outPath and renamed into place only
// when everything succeeded, so a failed or cancelled run leaves no file
// behind and never truncates an existing one.
func EnrichToPath(ctx context.Context, c *Components, logger *slog.Logger, inPath, outPath string, clean bool) (n int, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	n, err = EnrichFile(ctx, c, logger, inPath, tmp, clean)
	if err != nil {
		return 0, err
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("close output: %w", err)
	}
	if err = os.Rename(tmp.Name(), outPath); err != nil {
		return 0, fmt.Errorf("move output into place: %w", err)
	}
	return n, nil
}

// TranslateTexts translates each text with the configured backend, paced
// like any batch.
func TranslateTexts(ctx context.Context, c *Components, texts []string) []string {
	return c.Translation.TranslateBatch(ctx, texts)
}
