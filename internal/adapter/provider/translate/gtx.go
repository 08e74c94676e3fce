package translate

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
)

const (
	defaultGTXURL  = "https://translate.googleapis.com/translate_a/single"
	defaultTimeout = 15 * time.Second
)

// GTX translates through the public Google Translate web endpoint
// (client=gtx). It needs no credentials.
type GTX struct {
	baseURL    string
	source     string
	target     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewGTX creates a GTX backend. An empty baseURL uses the public endpoint;
// a non-positive timeout uses 15 seconds.
func NewGTX(baseURL, source, target string, timeout time.Duration, logger *slog.Logger) *GTX {
	if baseURL == "" {
		baseURL = defaultGTXURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GTX{
		baseURL:    baseURL,
		source:     source,
		target:     target,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "translate_gtx"),
	}
}

// Name identifies the backend in logs.
func (g *GTX) Name() string { return "gtx" }

// Translate returns the translation of text into the target language.
func (g *GTX) Translate(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", g.source)
	q.Set("tl", g.target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("gtx: create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gtx: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gtx: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gtx: read body: %w", err)
	}

	translated, err := parseGTX(body)
	if err != nil {
		return "", err
	}

	g.log.DebugContext(ctx, "gtx translated", slog.Int("chars", len(text)))
	return translated, nil
}

// parseGTX joins the translated segments of a gtx response. The payload is a
// nested array whose first element lists [translated, original, ...] pairs.
func parseGTX(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("gtx: decode json: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("gtx: empty response")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("gtx: decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gtx: no translated text")
	}
	return sb.String(), nil
}
