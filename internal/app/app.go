package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocab-export/internal/adapter/csvexport"
	"github.com/heartmarshall/vocab-export/internal/adapter/provider/cambridge"
	"github.com/heartmarshall/vocab-export/internal/adapter/provider/freedict"
	"github.com/heartmarshall/vocab-export/internal/adapter/provider/translate"
	"github.com/heartmarshall/vocab-export/internal/config"
	"github.com/heartmarshall/vocab-export/internal/service/dictionary"
	"github.com/heartmarshall/vocab-export/internal/service/translation"
	"github.com/heartmarshall/vocab-export/internal/service/vocabulary"
)

// Components holds the services shared by the HTTP server and the CLI.
type Components struct {
	Dictionary  *dictionary.Service
	Translation *translation.Service
	Vocabulary  *vocabulary.Service
	Export      *csvexport.Writer
}

// Close releases background resources.
func (c *Components) Close() {
	c.Translation.Close()
}

type translateBackend interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Build constructs every component from cfg.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	primary := cambridge.NewProvider(logger,
		cambridge.WithBaseURL(cfg.Dictionary.PrimaryURL),
		cambridge.WithTimeout(cfg.Dictionary.PrimaryTimeout),
		cambridge.WithUserAgent(cfg.Dictionary.UserAgent),
	)
	fallback := freedict.NewProviderWithURL(cfg.Dictionary.FallbackURL, cfg.Dictionary.FallbackTimeout, logger)
	dictSvc := dictionary.NewService(logger, primary, fallback, cfg.Dictionary)

	backend, err := newTranslateBackend(ctx, cfg.Translate, logger)
	if err != nil {
		return nil, err
	}
	translationSvc, err := translation.NewService(logger, backend, cfg.Translate)
	if err != nil {
		return nil, err
	}

	return &Components{
		Dictionary:  dictSvc,
		Translation: translationSvc,
		Vocabulary:  vocabulary.NewService(logger, dictSvc, translationSvc, cfg.Enrich),
		Export:      csvexport.NewWriter(cfg.Export.Dir, logger),
	}, nil
}

func newTranslateBackend(ctx context.Context, cfg config.TranslateConfig, logger *slog.Logger) (translateBackend, error) {
	switch cfg.Backend {
	case config.BackendGTX, "":
		return translate.NewGTX(cfg.BaseURL, cfg.Source, cfg.Target, cfg.Timeout, logger), nil
	case config.BackendCloud:
		return translate.NewCloud(ctx, cfg.APIKey, cfg.Source, cfg.Target, logger)
	case config.BackendOpenAI:
		return translate.NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Source, cfg.Target, logger)
	case config.BackendNone:
		return translate.NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown translate backend %q", cfg.Backend)
	}
}
