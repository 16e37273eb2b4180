// Package config loads runtime configuration from a YAML file with
// environment-variable overrides. A .env file in the working directory is
// applied to the environment first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort               = 8000
	defaultEnv                = "development"
	defaultCollectionInterval = 60
	defaultAnalysisInterval   = 120
)

// LLMConfig selects the hosted model provider.
type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai-compatible" (default) | "anthropic"
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// AppConfig holds startup configuration.
type AppConfig struct {
	Port           int       `yaml:"port"`
	DSN            string    `yaml:"dsn"` // MySQL DSN for the hosted store
	Env            string    `yaml:"env"` // "development" | "production"
	AllowedOrigins []string  `yaml:"allowed_origins"`
	LLM            LLMConfig `yaml:"llm"`

	CollectionIntervalMinutes int `yaml:"collection_interval_minutes"`
	AnalysisIntervalMinutes   int `yaml:"analysis_interval_minutes"`
}

func (c *AppConfig) IsDev() bool { return c.Env != "production" }

func (c *AppConfig) CollectionInterval() time.Duration {
	return time.Duration(c.CollectionIntervalMinutes) * time.Minute
}

func (c *AppConfig) AnalysisInterval() time.Duration {
	return time.Duration(c.AnalysisIntervalMinutes) * time.Minute
}

// Load reads the YAML config (optional) and applies environment overrides.
// The returned config is not yet validated; call Validate before use.
func Load(configPath string) (*AppConfig, error) {
	_ = gotenv.Load(".env")

	cfg := &AppConfig{
		Port:                      defaultPort,
		Env:                       defaultEnv,
		CollectionIntervalMinutes: defaultCollectionInterval,
		AnalysisIntervalMinutes:   defaultAnalysisInterval,
	}

	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only startup is fine
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.CollectionIntervalMinutes < 1 {
		cfg.CollectionIntervalMinutes = defaultCollectionInterval
	}
	if cfg.AnalysisIntervalMinutes < 1 {
		cfg.AnalysisIntervalMinutes = defaultAnalysisInterval
	}
	return cfg, nil
}

// Validate checks that required credentials are present. The process must
// refuse to start when any are missing.
func (c *AppConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.DSN) == "" {
		missing = append(missing, "DATABASE_DSN")
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		missing = append(missing, "LLM_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_ENDPOINT"); v != "" {
		cfg.LLM.Endpoint = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("COLLECTION_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CollectionIntervalMinutes = n
		}
	}
	if v := os.Getenv("ANALYSIS_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AnalysisIntervalMinutes = n
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
}
