// Package config resolves the explorer's settings from flags, environment
// variables and an optional config file.
package config

import (
	"strings"
	"time"

	"github.com/Yates-Labs/historian/internal/narrative"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the explorer reads.
const EnvPrefix = "HISTORIAN"

// ErrMissingAPIKey is returned when a command needs the model but no key is set.
var ErrMissingAPIKey = errors.New("API key is required")

// Config is the resolved configuration for one run.
type Config struct {
	// APIKey authenticates with the model provider. Never log it.
	APIKey string `mapstructure:"api_key"`

	// DataFile is the path of the historical events dataset
	DataFile string `mapstructure:"data_file"`

	// Provider selects the model endpoint ("gemini" or "openai")
	Provider string `mapstructure:"provider"`

	// Model overrides the provider's default model
	Model string `mapstructure:"model"`

	// BaseURL overrides the provider's endpoint
	BaseURL string `mapstructure:"base_url"`

	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	// RequestTimeout bounds each model call (0 = none)
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Similarity names the retrieval scorer ("sequence" or "tokens")
	Similarity string `mapstructure:"similarity"`

	// Strict makes any dataset loading failure fatal
	Strict bool `mapstructure:"strict"`

	// LogFormat is "console" or "json"
	LogFormat string `mapstructure:"log_format"`

	Verbose bool `mapstructure:"verbose"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"data":            "data_file",
	"provider":        "provider",
	"model":           "model",
	"base-url":        "base_url",
	"temperature":     "temperature",
	"max-tokens":      "max_tokens",
	"request-timeout": "request_timeout",
	"similarity":      "similarity",
	"strict":          "strict",
	"log-format":      "log_format",
	"verbose":         "verbose",
}

// SetDefaults installs the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("data_file", "history_data.json")
	v.SetDefault("provider", narrative.ProviderGemini)
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("temperature", 0.0)
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("similarity", "sequence")
	v.SetDefault("strict", false)
	v.SetDefault("log_format", "console")
	v.SetDefault("verbose", false)
}

// NewViper builds a Viper instance with defaults, HISTORIAN_* environment
// variables and, when flags is non-nil, the matching command-line flags.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// The key may come from the provider's conventional variable.
	if err := v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, errors.Wrap(err, "failed to bind API key environment")
	}

	SetDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind flag --%s", name)
			}
		}
	}

	return v, nil
}

// Load resolves the configuration. A non-empty configFile is read first;
// environment variables and explicitly set flags take precedence over it.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	return &cfg, nil
}

// RequireAPIKey reports ErrMissingAPIKey when no key is configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey != "" {
		return nil
	}
	return errors.WithHint(ErrMissingAPIKey,
		"set "+EnvPrefix+"_API_KEY (or GOOGLE_API_KEY / OPENAI_API_KEY), or add it to a .env file")
}

// LLMConfig returns the model client settings.
func (c *Config) LLMConfig() narrative.LLMConfig {
	model := c.Model
	if model == "" {
		model = narrative.DefaultModel(c.Provider)
	}
	return narrative.LLMConfig{
		Provider:    c.Provider,
		Model:       model,
		BaseURL:     c.BaseURL,
		Temperature: float32(c.Temperature),
		MaxTokens:   c.MaxTokens,
		APIKey:      c.APIKey,
	}
}

// LogFields returns key/value pairs describing the configuration, safe to
// log. The API key is reported only as present or absent.
func (c *Config) LogFields() []interface{} {
	llm := c.LLMConfig()
	return []interface{}{
		"data_file", c.DataFile,
		"provider", llm.Provider,
		"model", llm.Model,
		"base_url", c.BaseURL,
		"similarity", c.Similarity,
		"strict", c.Strict,
		"request_timeout", c.RequestTimeout,
		"api_key_set", c.APIKey != "",
	}
}
