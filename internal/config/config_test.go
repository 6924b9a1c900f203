package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"ADA_PROVIDER", "ADA_MODEL", "API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY",
	"ANTHROPIC_API_KEY", "OLLAMA_HOST", "ADA_CODEC_ADDR", "ADA_DB", "ADA_HTTP_ADDR",
	"ADA_GRPC_ADDR", "ADA_LOG_FILE", "ADA_LOG_LEVEL", "ADA_PROVIDER_TIMEOUT",
	"ADA_PROVIDER_RETRIES", "ADA_HISTORY_LIMIT",
}

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ada.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// #region load
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderNone {
		t.Errorf("provider = %q, want none without keys", cfg.Provider)
	}
	if cfg.HistoryLimit != 20 || cfg.ProviderRetries != 2 || cfg.ProviderTimeout != 30*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadGeminiKeyPicksGemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderGemini || cfg.GeminiAPIKey != "legacy" {
		t.Errorf("got provider %q key %q", cfg.Provider, cfg.GeminiAPIKey)
	}

	t.Setenv("GEMINI_API_KEY", "preferred")
	cfg, _ = Load("")
	if cfg.GeminiAPIKey != "preferred" {
		t.Errorf("GEMINI_API_KEY should win over API_KEY, got %q", cfg.GeminiAPIKey)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
provider: Ollama
model: llama3.2
provider_timeout: 5s
provider_retries: 4
db_path: /var/lib/ada.db
log_level: debug
`)
	t.Setenv("ADA_PROVIDER_RETRIES", "1")
	t.Setenv("ADA_HTTP_ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama || cfg.Model != "llama3.2" {
		t.Errorf("provider %q model %q", cfg.Provider, cfg.Model)
	}
	if cfg.ProviderTimeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.ProviderTimeout)
	}
	if cfg.ProviderRetries != 1 {
		t.Errorf("env should override yaml retries, got %d", cfg.ProviderRetries)
	}
	if cfg.HTTPAddr != ":9999" || cfg.DBPath != "/var/lib/ada.db" {
		t.Errorf("http %q db %q", cfg.HTTPAddr, cfg.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeYAML(t, "provider: [unclosed")); err == nil {
		t.Error("expected error for invalid yaml")
	}
	t.Setenv("ADA_PROVIDER_TIMEOUT", "soon")
	if _, err := Load(""); err == nil {
		t.Error("expected error for bad duration")
	}
}

// #endregion load

// #region validate
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown provider", func(c *Config) { c.Provider = "bard" }, "unknown provider"},
		{"gemini needs key", func(c *Config) { c.Provider = ProviderGemini }, "GEMINI_API_KEY"},
		{"openai needs key", func(c *Config) { c.Provider = ProviderOpenAI }, "OPENAI_API_KEY"},
		{"anthropic needs key", func(c *Config) { c.Provider = ProviderAnthropic }, "ANTHROPIC_API_KEY"},
		{"ollama needs model", func(c *Config) { c.Provider = ProviderOllama }, "model"},
		{"grpc needs addr", func(c *Config) { c.Provider = ProviderGRPC }, "ADA_CODEC_ADDR"},
		{"negative retries", func(c *Config) { c.ProviderRetries = -1 }, "provider_retries"},
		{"tiny history", func(c *Config) { c.HistoryLimit = 1 }, "history_limit"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Provider = ProviderNone
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"WARNING", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, ok)
		}
	}
}

// #endregion validate

// #region logging
func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("resolved", "component", "classifier", "tier", 1)

	if strings.Contains(stderr.String(), "hidden") || strings.Contains(file.String(), "hidden") {
		t.Error("debug line should be filtered at info level")
	}
	if !strings.Contains(stderr.String(), "component=classifier") {
		t.Errorf("stderr missing text output: %q", stderr.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(file.Bytes()), &rec); err != nil {
		t.Fatalf("file output is not JSON: %v (%q)", err, file.String())
	}
	if rec["msg"] != "resolved" || rec["component"] != "classifier" {
		t.Errorf("unexpected JSON record: %v", rec)
	}
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ada.log")
	logger, cleanup := SetupLogger(path, slog.LevelInfo)
	logger.Info("hello")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file missing record: %q", data)
	}
}

// #endregion logging
