package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Completion providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds the full application configuration.
type Config struct {
	Firecrawl  FirecrawlConfig  `yaml:"firecrawl" mapstructure:"firecrawl"`
	Completion CompletionConfig `yaml:"completion" mapstructure:"completion"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini     GeminiConfig     `yaml:"gemini" mapstructure:"gemini"`
	Scrape     ScrapeConfig     `yaml:"scrape" mapstructure:"scrape"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// FirecrawlConfig holds Firecrawl API settings.
type FirecrawlConfig struct {
	Key        string  `yaml:"key" mapstructure:"key"`
	BaseURL    string  `yaml:"base_url" mapstructure:"base_url"`
	WaitMs     int     `yaml:"wait_ms" mapstructure:"wait_ms"`
	TimeoutMs  int     `yaml:"timeout_ms" mapstructure:"timeout_ms"`
	MapLimit   int     `yaml:"map_limit" mapstructure:"map_limit"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// CompletionConfig selects the completion provider.
type CompletionConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ScrapeConfig configures the local fallback scraper.
type ScrapeConfig struct {
	LocalFallback bool   `yaml:"local_fallback" mapstructure:"local_fallback"`
	UserAgent     string `yaml:"user_agent" mapstructure:"user_agent"`
}

// PipelineConfig configures discovery and extraction behavior.
type PipelineConfig struct {
	Concurrency      int `yaml:"concurrency" mapstructure:"concurrency"`
	ProfileBatchSize int `yaml:"profile_batch_size" mapstructure:"profile_batch_size"`
	MaxListingPages  int `yaml:"max_listing_pages" mapstructure:"max_listing_pages"`
	MinTextChars     int `yaml:"min_text_chars" mapstructure:"min_text_chars"`
	MaxTextChars     int `yaml:"max_text_chars" mapstructure:"max_text_chars"`
	MaxLinks         int `yaml:"max_links" mapstructure:"max_links"`
	CallTimeoutSecs  int `yaml:"call_timeout_secs" mapstructure:"call_timeout_secs"`
	RetryAttempts    int `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryBaseMs      int `yaml:"retry_base_ms" mapstructure:"retry_base_ms"`
	RetryMaxMs       int `yaml:"retry_max_ms" mapstructure:"retry_max_ms"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config.yaml, and the environment.
func Load() (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FACULTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials also honor the providers' conventional variable names.
	for key, envs := range map[string][]string{
		"firecrawl.key": {"FACULTY_FIRECRAWL_KEY", "FIRECRAWL_API_KEY"},
		"anthropic.key": {"FACULTY_ANTHROPIC_KEY", "ANTHROPIC_API_KEY"},
		"gemini.key":    {"FACULTY_GEMINI_KEY", "GEMINI_API_KEY"},
	} {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v1")
	v.SetDefault("firecrawl.wait_ms", 5000)
	v.SetDefault("firecrawl.timeout_ms", 30000)
	v.SetDefault("firecrawl.map_limit", 5000)
	v.SetDefault("firecrawl.rate_per_sec", 0)
	v.SetDefault("completion.provider", ProviderAnthropic)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 8192)
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("scrape.local_fallback", false)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; faculty-cli/1.0)")
	v.SetDefault("pipeline.concurrency", 3)
	v.SetDefault("pipeline.profile_batch_size", 100)
	v.SetDefault("pipeline.max_listing_pages", 10)
	v.SetDefault("pipeline.min_text_chars", 200)
	v.SetDefault("pipeline.max_text_chars", 50000)
	v.SetDefault("pipeline.max_links", 300)
	v.SetDefault("pipeline.call_timeout_secs", 30)
	v.SetDefault("pipeline.retry_attempts", 5)
	v.SetDefault("pipeline.retry_base_ms", 1000)
	v.SetDefault("pipeline.retry_max_ms", 30000)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ErrFirecrawlNotConfigured and ErrCompletionNotConfigured are returned by
// CheckCredentials when a required credential is missing.
var (
	ErrFirecrawlNotConfigured  = eris.New("Firecrawl connector not configured")
	ErrCompletionNotConfigured = eris.New("Completion service not configured")
)

// CheckCredentials reports the first missing credential among the
// collaborators a pipeline run calls.
func (c *Config) CheckCredentials() error {
	if strings.TrimSpace(c.Firecrawl.Key) == "" {
		return ErrFirecrawlNotConfigured
	}
	key := c.Anthropic.Key
	if c.Completion.Provider == ProviderGemini {
		key = c.Gemini.Key
	}
	if strings.TrimSpace(key) == "" {
		return ErrCompletionNotConfigured
	}
	return nil
}

// Validate checks the configuration for the given mode ("serve", "scrape",
// or "analyze") and reports every problem found.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "scrape", "analyze":
		if strings.TrimSpace(c.Firecrawl.Key) == "" {
			problems = append(problems, "firecrawl.key is required")
		}
		switch c.Completion.Provider {
		case ProviderGemini:
			if strings.TrimSpace(c.Gemini.Key) == "" {
				problems = append(problems, "gemini.key is required")
			}
		default:
			if strings.TrimSpace(c.Anthropic.Key) == "" {
				problems = append(problems, "anthropic.key is required")
			}
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Completion.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		problems = append(problems, fmt.Sprintf("completion.provider must be %q or %q", ProviderAnthropic, ProviderGemini))
	}
	if c.Pipeline.Concurrency < 1 || c.Pipeline.Concurrency > 20 {
		problems = append(problems, "pipeline.concurrency must be between 1 and 20")
	}
	if c.Pipeline.ProfileBatchSize < 1 || c.Pipeline.ProfileBatchSize > 100 {
		problems = append(problems, "pipeline.profile_batch_size must be between 1 and 100")
	}
	if c.Pipeline.MaxListingPages < 0 {
		problems = append(problems, "pipeline.max_listing_pages must be >= 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
