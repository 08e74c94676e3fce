package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAI translates with a chat-completion model.
type OpenAI struct {
	client *openai.Client
	model  string
	source string
	target string
	log    *slog.Logger
}

// NewOpenAI creates an OpenAI backend. An empty baseURL keeps the public
// API; an empty model uses gpt-4o-mini.
func NewOpenAI(apiKey, baseURL, model, source, target string, logger *slog.Logger) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai translate: api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		source: source,
		target: target,
		log:    logger.With("adapter", "translate_openai"),
	}, nil
}

// Name identifies the backend in logs.
func (o *OpenAI) Name() string { return "openai" }

// Translate returns the translation of text into the target language.
func (o *OpenAI) Translate(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"You translate %s text to %s. Respond with only the translation, nothing else.",
					languageName(o.source), languageName(o.target),
				),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.3,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai translate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai translate: no translation returned")
	}

	o.log.DebugContext(ctx, "openai translated",
		slog.Int("chars", len(text)),
		slog.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// languageName renders a BCP 47 code as its English name ("vi" → "Vietnamese").
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
