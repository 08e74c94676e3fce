package cambridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/heartmarshall/vocab-export/internal/provider"
)

const (
	defaultBaseURL = "https://dictionary.cambridge.org/dictionary/english"
	defaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent on every request; the site rejects obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	maxBodyBytes = 8 << 20
)

// Provider scrapes word pages of the Cambridge English Dictionary.
type Provider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// Option customises a Provider.
type Option func(*Provider)

// WithBaseURL overrides the dictionary base URL (for testing or mirrors).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Provider) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// NewProvider creates a Provider with the default Cambridge URL and a
// 30-second timeout.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    defaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "cambridge"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the source in logs and errors.
func (p *Provider) Name() string { return "cambridge" }

// FetchDefinition downloads and parses the word page. A non-200 response is
// returned as *provider.HTTPStatusError so the caller can fall back.
func (p *Provider) FetchDefinition(ctx context.Context, word string) (provider.DefinitionResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "cambridge request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("cambridge: create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("cambridge: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return provider.DefinitionResult{}, &provider.HTTPStatusError{
			Source:     p.Name(),
			URL:        reqURL,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("cambridge: read body: %w", err)
	}

	result := Parse(word, body)

	p.log.DebugContext(ctx, "cambridge response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Bool("has_example", result.Example != ""),
		slog.Bool("has_ipa", result.IPA != ""),
	)

	return result, nil
}

// Parse extracts the first definition, example, IPA and part of speech from
// a word page. Each field is located with a primary selector and a
// secondary one used only when the first matches nothing. A page without
// definition text yields the "not found" meaning.
func Parse(word string, html []byte) provider.DefinitionResult {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return provider.DefinitionResult{Meaning: provider.ParseErrorMeaning(word)}
	}

	var meaning string
	if block := firstOf(doc.Selection, "div.def-block", "div.ddef_d"); block != nil {
		if def := firstOf(block, "div.def", "div.ddef_d"); def != nil {
			meaning = text(def)
		}
	}
	if meaning == "" {
		meaning = provider.NotFoundMeaning(word)
	}

	return provider.DefinitionResult{
		Meaning:      meaning,
		Example:      textOf(doc.Selection, "span.eg", "div.examp"),
		IPA:          textOf(doc.Selection, "span.ipa", "span.pron"),
		PartOfSpeech: textOf(doc.Selection, "span.pos", "span.gram"),
	}
}

// firstOf returns the first descendant of s matching primary, or failing
// that the first matching secondary. Nil when neither matches.
func firstOf(s *goquery.Selection, primary, secondary string) *goquery.Selection {
	if m := s.Find(primary).First(); m.Length() > 0 {
		return m
	}
	if m := s.Find(secondary).First(); m.Length() > 0 {
		return m
	}
	return nil
}

func textOf(s *goquery.Selection, primary, secondary string) string {
	m := firstOf(s, primary, secondary)
	if m == nil {
		return ""
	}
	return text(m)
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
