package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/vocab-export/internal/provider"
)

const (
	defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout = 15 * time.Second
)

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, defaultTimeout, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL and timeout.
// A non-positive timeout keeps the 15-second default.
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// Name identifies the source in logs and errors.
func (p *Provider) Name() string { return "freedict" }

// FetchDefinition fetches the first definition group for the word.
// A non-200 status is returned as *provider.HTTPStatusError and an empty
// entry list as provider.ErrNoEntry. Nothing is retried.
func (p *Provider) FetchDefinition(ctx context.Context, word string) (provider.DefinitionResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("freedict: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return provider.DefinitionResult{}, &provider.HTTPStatusError{
			Source:     p.Name(),
			URL:        reqURL,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("freedict: decode json: %w", err)
	}
	if len(entries) == 0 {
		return provider.DefinitionResult{}, fmt.Errorf("freedict: %q: %w", word, provider.ErrNoEntry)
	}

	result := mapEntry(word, entries[0])

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("entries", len(entries)),
		slog.String("pos", result.PartOfSpeech),
	)

	return result, nil
}

// mapEntry converts the first API entry into a DefinitionResult: the first
// definition of the first meaning group supplies meaning, example and part
// of speech; the first phonetic carrying text supplies the IPA.
func mapEntry(word string, entry apiEntry) provider.DefinitionResult {
	var result provider.DefinitionResult

	if len(entry.Meanings) > 0 {
		m := entry.Meanings[0]
		result.PartOfSpeech = m.PartOfSpeech
		if len(m.Definitions) > 0 {
			result.Meaning = m.Definitions[0].Definition
			result.Example = m.Definitions[0].Example
		}
	}

	result.IPA = entry.ipa()

	if result.Meaning == "" {
		result.Meaning = provider.NotFoundMeaning(word)
	}
	return result
}
