package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDev() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.CollectionInterval() != 60*time.Minute {
		t.Errorf("CollectionInterval = %v, want 60m", cfg.CollectionInterval())
	}
	if cfg.AnalysisInterval() != 120*time.Minute {
		t.Errorf("AnalysisInterval = %v, want 120m", cfg.AnalysisInterval())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
port: 9090
env: production
dsn: user:pass@tcp(localhost:3306)/plenum
llm:
  api_key: sk-test
  model: mistral-large-latest
collection_interval_minutes: 15
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("IsDev() = true for production env")
	}
	if cfg.LLM.Model != "mistral-large-latest" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.CollectionInterval() != 15*time.Minute {
		t.Errorf("CollectionInterval = %v, want 15m", cfg.CollectionInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate returned %v for complete config", err)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("API_PORT", "7070")
	t.Setenv("DATABASE_DSN", "env-dsn")
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d, want env override 7070", cfg.Port)
	}
	if cfg.DSN != "env-dsn" || cfg.LLM.APIKey != "env-key" {
		t.Errorf("credentials not taken from environment: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestValidateReportsAllMissing(t *testing.T) {
	cfg := &AppConfig{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil for empty config")
	}
	msg := err.Error()
	if !strings.Contains(msg, "DATABASE_DSN") || !strings.Contains(msg, "LLM_API_KEY") {
		t.Errorf("Validate error %q does not name both missing values", msg)
	}
}

func TestInvalidPortRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("port: 70000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted out-of-range port")
	}
}
