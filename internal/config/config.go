// Package config loads engine settings from defaults, an optional YAML file
// and environment variables.
package config

// #region imports
import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region providers

// Provider names.
const (
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGRPC      = "grpc"
	ProviderNone      = "none"
)

var knownProviders = map[string]bool{
	ProviderGemini: true, ProviderOllama: true, ProviderOpenAI: true,
	ProviderAnthropic: true, ProviderGRPC: true, ProviderNone: true,
}

// #endregion

// #region config

// Config holds all configuration values.
type Config struct {
	// Insight provider
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"`
	OpenAIAPIKey    string        `yaml:"openai_api_key"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key"`
	OllamaHost      string        `yaml:"ollama_host"`
	CodecAddr       string        `yaml:"codec_addr"`
	ProviderTimeout time.Duration `yaml:"provider_timeout"`
	ProviderRetries int           `yaml:"provider_retries"`

	// Storage
	DBPath       string `yaml:"db_path"`
	HistoryLimit int    `yaml:"history_limit"`

	// Servers
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"` // empty disables the insight gRPC listener

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OllamaHost:      "http://localhost:11434",
		ProviderTimeout: 30 * time.Second,
		ProviderRetries: 2,
		DBPath:          "ada.db",
		HistoryLimit:    20,
		HTTPAddr:        ":8080",
		LogFile:         "/tmp/ada.log",
		LogLevel:        "INFO",
	}
}

// Load applies the YAML file at path (if non-empty) and then environment
// overrides on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderNone
		if cfg.GeminiAPIKey != "" {
			cfg.Provider = ProviderGemini
		}
	}
	return cfg, nil
}

// #endregion

// #region env

func (c *Config) applyEnv() error {
	setString(&c.Provider, "ADA_PROVIDER")
	setString(&c.Model, "ADA_MODEL")
	setString(&c.GeminiAPIKey, "API_KEY")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.OllamaHost, "OLLAMA_HOST")
	setString(&c.CodecAddr, "ADA_CODEC_ADDR")
	setString(&c.DBPath, "ADA_DB")
	setString(&c.HTTPAddr, "ADA_HTTP_ADDR")
	setString(&c.GRPCAddr, "ADA_GRPC_ADDR")
	setString(&c.LogFile, "ADA_LOG_FILE")
	setString(&c.LogLevel, "ADA_LOG_LEVEL")

	if v := os.Getenv("ADA_PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ADA_PROVIDER_TIMEOUT: %w", err)
		}
		c.ProviderTimeout = d
	}
	if v := os.Getenv("ADA_PROVIDER_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ADA_PROVIDER_RETRIES: %w", err)
		}
		c.ProviderRetries = n
	}
	if v := os.Getenv("ADA_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ADA_HISTORY_LIMIT: %w", err)
		}
		c.HistoryLimit = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// #endregion

// #region validate

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if !knownProviders[c.Provider] {
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("gemini provider requires GEMINI_API_KEY"))
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("openai provider requires OPENAI_API_KEY"))
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("anthropic provider requires ANTHROPIC_API_KEY"))
		}
	case ProviderOllama:
		if c.Model == "" {
			errs = append(errs, errors.New("ollama provider requires a model"))
		}
	case ProviderGRPC:
		if c.CodecAddr == "" {
			errs = append(errs, errors.New("grpc provider requires ADA_CODEC_ADDR"))
		}
	}
	if c.ProviderTimeout < 0 {
		errs = append(errs, errors.New("provider_timeout must not be negative"))
	}
	if c.ProviderRetries < 0 {
		errs = append(errs, errors.New("provider_retries must not be negative"))
	}
	if c.HistoryLimit < 2 {
		errs = append(errs, errors.New("history_limit must be at least 2"))
	}
	if _, ok := ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// #endregion

// #region log-level

// ParseLevel maps a level name onto slog.Level. Unknown names give Info
// and ok=false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// #endregion
