// Package config provides configuration loading and validation for the CLI and the local server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/types"
)

// Defaults applied when neither the config file nor the environment sets a value
const (
	DefaultStorePath = ".cv-workbench/state.json"
	DefaultPort      = 8080
)

// Config is the CLI and server configuration. It is read from an optional JSON file and
// then overlaid with environment variables; CLI flags win over both.
type Config struct {
	// AI
	Provider        string            `json:"provider,omitempty" env:"CVW_AI_PROVIDER" validate:"omitempty,oneof=gemini anthropic claude"`
	APIKey          string            `json:"api_key,omitempty" env:"CVW_API_KEY"`
	GeminiAPIKey    string            `json:"-" env:"GEMINI_API_KEY"`
	AnthropicAPIKey string            `json:"-" env:"ANTHROPIC_API_KEY"`
	Models          map[string]string `json:"models,omitempty" validate:"dive,keys,oneof=lite standard advanced,endkeys,required"`
	AITimeout       Duration          `json:"ai_timeout,omitempty" env:"CVW_AI_TIMEOUT" validate:"gte=0"`
	AIMaxRetries    int               `json:"ai_max_retries,omitempty" env:"CVW_AI_MAX_RETRIES" validate:"gte=0,lte=10"`
	UseAI           bool              `json:"use_ai,omitempty" env:"CVW_USE_AI"`

	// Storage and server
	StorePath string `json:"store_path,omitempty" env:"CVW_STORE_PATH"`
	Port      int    `json:"port,omitempty" env:"CVW_PORT" validate:"gte=0,lte=65535"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty" env:"CVW_VERBOSE"`
	DefaultMode string `json:"default_mode,omitempty" env:"CVW_DEFAULT_MODE" validate:"omitempty,oneof=governance infrastructure digital hybrid"`
	Template    string `json:"template,omitempty" env:"CVW_TEMPLATE"` // Path to a LaTeX template overriding the embedded one
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Provider:     string(llm.ProviderGemini),
		AITimeout:    Duration(llm.DefaultTimeout),
		AIMaxRetries: llm.DefaultMaxRetries,
		StorePath:    DefaultStorePath,
		Port:         DefaultPort,
		DefaultMode:  string(types.ModeHybrid),
	}
}

// Load builds the effective configuration: defaults, then the file at path (skipped when
// path is empty), then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *fileCfg
	}

	if err := LoadEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON file. Fields the file omits keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadEnv overlays environment variables onto cfg. Unset variables leave fields untouched.
func LoadEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Booleans and retry counts are left alone because zero is a meaningful value for them.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.DefaultMode == "" {
		result.DefaultMode = defaults.DefaultMode
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AITimeout == 0 {
		result.AITimeout = defaults.AITimeout
	}
	if len(result.Models) == 0 && len(defaults.Models) > 0 {
		result.Models = make(map[string]string, len(defaults.Models))
		for tier, model := range defaults.Models {
			result.Models[tier] = model
		}
	}

	return result
}

// ResolveAPIKey returns the explicit API key, or the provider's conventional env key
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return ""
	}
	if provider == llm.ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// LLMConfig returns the provider model configuration with any per-tier overrides applied
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	llmCfg := llm.DefaultConfigFor(provider)
	for tier, model := range c.Models {
		if model = strings.TrimSpace(model); model != "" {
			llmCfg = llmCfg.WithModel(llm.ModelTier(tier), model)
		}
	}
	return llmCfg, nil
}

// GenerateOptions returns call options carrying the configured timeout and retry budget
func (c *Config) GenerateOptions(tier llm.ModelTier, jsonOut bool) llm.GenerateOptions {
	opts := llm.DefaultGenerateOptions(tier, jsonOut)
	if c.AITimeout > 0 {
		opts.Timeout = time.Duration(c.AITimeout)
	}
	opts.MaxRetries = c.AIMaxRetries
	return opts
}

// Mode returns the configured default positioning mode
func (c *Config) Mode() types.PositioningMode {
	return types.ParsePositioningMode(c.DefaultMode)
}
