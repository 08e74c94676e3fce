package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Translate  TranslateConfig  `yaml:"translate"`
	Enrich     EnrichConfig     `yaml:"enrich"`
	Export     ExportConfig     `yaml:"export"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"APP_HOST"                env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8000"`
	Debug           bool          `yaml:"debug"            env:"DEBUG"                   env-default:"false"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"0s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"        env-default:"1048576"`
}

// DictionaryConfig holds the definition sources and the breaker guarding the
// primary one.
type DictionaryConfig struct {
	PrimaryURL         string        `yaml:"primary_url"          env:"DICT_PRIMARY_URL"          env-default:"https://dictionary.cambridge.org/dictionary/english"`
	FallbackURL        string        `yaml:"fallback_url"         env:"DICT_FALLBACK_URL"         env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	PrimaryTimeout     time.Duration `yaml:"primary_timeout"      env:"DICT_PRIMARY_TIMEOUT"      env-default:"30s"`
	FallbackTimeout    time.Duration `yaml:"fallback_timeout"     env:"DICT_FALLBACK_TIMEOUT"     env-default:"15s"`
	UserAgent          string        `yaml:"user_agent"           env:"DICT_USER_AGENT"`
	BreakerMaxFailures uint32        `yaml:"breaker_max_failures" env:"DICT_BREAKER_MAX_FAILURES" env-default:"5"`
	BreakerOpenTimeout time.Duration `yaml:"breaker_open_timeout" env:"DICT_BREAKER_OPEN_TIMEOUT" env-default:"60s"`
}

// Translation backends.
const (
	BackendGTX    = "gtx"
	BackendCloud  = "cloud"
	BackendOpenAI = "openai"
	BackendNone   = "none"
)

// TranslateConfig holds translation backend settings.
type TranslateConfig struct {
	Backend    string        `yaml:"backend"     env:"TRANSLATE_BACKEND"     env-default:"gtx"`
	Source     string        `yaml:"source"      env:"TRANSLATE_SOURCE"      env-default:"en"`
	Target     string        `yaml:"target"      env:"TRANSLATE_TARGET"      env-default:"vi"`
	APIKey     string        `yaml:"api_key"     env:"TRANSLATE_API_KEY"`
	Model      string        `yaml:"model"       env:"TRANSLATE_MODEL"`
	BaseURL    string        `yaml:"base_url"    env:"TRANSLATE_BASE_URL"`
	Timeout    time.Duration `yaml:"timeout"     env:"TRANSLATE_TIMEOUT"     env-default:"15s"`
	Workers    int           `yaml:"workers"     env:"TRANSLATE_WORKERS"     env-default:"8"`
	BatchDelay time.Duration `yaml:"batch_delay" env:"TRANSLATE_BATCH_DELAY" env-default:"100ms"`
}

// EnrichConfig holds enrichment pipeline settings.
type EnrichConfig struct {
	WordDelay time.Duration `yaml:"word_delay" env:"ENRICH_WORD_DELAY" env-default:"0s"`
}

// ExportConfig holds CSV export settings.
type ExportConfig struct {
	// Dir is where temporary export files are created; empty means os.TempDir().
	Dir string `yaml:"dir" env:"EXPORT_DIR"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// EffectiveLevel returns the configured level, forced to "debug" when the
// server runs in debug mode.
func (c *Config) EffectiveLevel() string {
	if c.Server.Debug {
		return "debug"
	}
	return c.Log.Level
}
