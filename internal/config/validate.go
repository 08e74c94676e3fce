package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	if err := c.Translate.validate(); err != nil {
		return fmt.Errorf("translate: %w", err)
	}
	if c.Enrich.WordDelay < 0 {
		return fmt.Errorf("enrich: word_delay must be >= 0 (got %v)", c.Enrich.WordDelay)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", s.Port)
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", s.MaxUploadBytes)
	}
	return nil
}

func (d *DictionaryConfig) validate() error {
	if d.PrimaryURL == "" {
		return fmt.Errorf("primary_url is required")
	}
	if d.FallbackURL == "" {
		return fmt.Errorf("fallback_url is required")
	}
	if d.PrimaryTimeout <= 0 || d.FallbackTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	if d.BreakerMaxFailures == 0 {
		return fmt.Errorf("breaker_max_failures must be > 0")
	}
	return nil
}

func (t *TranslateConfig) validate() error {
	t.Backend = strings.ToLower(strings.TrimSpace(t.Backend))
	switch t.Backend {
	case BackendGTX, BackendNone:
	case BackendCloud, BackendOpenAI:
		if t.APIKey == "" {
			return fmt.Errorf("api_key is required for backend %q", t.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", t.Backend)
	}

	for name, code := range map[string]string{"source": t.Source, "target": t.Target} {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("%s language %q: %w", name, code, err)
		}
	}

	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", t.Timeout)
	}
	if t.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", t.Workers)
	}
	if t.BatchDelay < 0 {
		return fmt.Errorf("batch_delay must be >= 0 (got %v)", t.BatchDelay)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	return nil
}
