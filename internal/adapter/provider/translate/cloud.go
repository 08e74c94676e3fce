package translate

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

// Cloud translates through the Google Cloud Translation v2 API.
type Cloud struct {
	svc    *translatev2.Service
	source string
	target string
	log    *slog.Logger
}

// NewCloud creates a Cloud backend authenticated by API key. Extra client
// options (endpoint, HTTP client) are passed through to the API client.
func NewCloud(ctx context.Context, apiKey, source, target string, logger *slog.Logger, opts ...option.ClientOption) (*Cloud, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("cloud translate: api key is required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	svc, err := translatev2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cloud translate: create service: %w", err)
	}
	return &Cloud{
		svc:    svc,
		source: source,
		target: target,
		log:    logger.With("adapter", "translate_cloud"),
	}, nil
}

// Name identifies the backend in logs.
func (c *Cloud) Name() string { return "cloud" }

// Translate returns the translation of text into the target language.
func (c *Cloud) Translate(ctx context.Context, text string) (string, error) {
	resp, err := c.svc.Translations.List([]string{text}, c.target).
		Source(c.source).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("cloud translate: %w", err)
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("cloud translate: no translation returned")
	}

	c.log.DebugContext(ctx, "cloud translated", slog.Int("chars", len(text)))
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}
