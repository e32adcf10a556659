package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"provider": "anthropic",
		"api_key": "sk-test",
		"models": {"standard": "claude-sonnet-4-5"},
		"ai_timeout": "20s",
		"store_path": "/tmp/cv.json",
		"verbose": true,
		"default_mode": "governance",
		"use_ai": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Models["standard"])
	assert.Equal(t, Duration(20*time.Second), cfg.AITimeout)
	assert.Equal(t, "/tmp/cv.json", cfg.StorePath)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.UseAI)
	assert.Equal(t, types.ModeGovernance, cfg.Mode())

	// omitted fields keep defaults
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, llm.DefaultMaxRetries, cfg.AIMaxRetries)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "empty path", path: "", wantErr: "config path is empty"},
		{name: "missing file", path: "/nonexistent/path/config.json", wantErr: "failed to read config file"},
		{name: "invalid json", path: writeConfig(t, `{ invalid json }`), wantErr: "failed to parse config JSON"},
		{name: "bad duration", path: writeConfig(t, `{"ai_timeout": "soon"}`), wantErr: "invalid duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"provider": "gemini", "port": 9000, "store_path": "file.json"}`)

	t.Setenv("CVW_AI_PROVIDER", "anthropic")
	t.Setenv("CVW_PORT", "9100")
	t.Setenv("CVW_AI_TIMEOUT", "5s")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, Duration(5*time.Second), cfg.AITimeout)
	assert.Equal(t, "file.json", cfg.StorePath)
	assert.Equal(t, "anthropic-key", cfg.ResolveAPIKey())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultStorePath, cfg.StorePath)
	assert.Equal(t, string(llm.ProviderGemini), cfg.Provider)
	assert.Equal(t, types.ModeHybrid, cfg.Mode())
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("CVW_PORT", "not-a-port")

	_, err := Load("")
	assert.ErrorContains(t, err, "failed to read environment")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "openai" }, wantErr: "Provider"},
		{name: "negative retries", mutate: func(c *Config) { c.AIMaxRetries = -1 }, wantErr: "AIMaxRetries"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "Port"},
		{name: "unknown mode", mutate: func(c *Config) { c.DefaultMode = "sales" }, wantErr: "DefaultMode"},
		{name: "unknown model tier", mutate: func(c *Config) { c.Models = map[string]string{"ultra": "x"} }, wantErr: "Models"},
		{name: "missing template", mutate: func(c *Config) { c.Template = "/nonexistent/cv.tex" }, wantErr: "template file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{APIKey: "explicit", Port: 9000}

	merged := cfg.MergeWithDefaults(Config{
		APIKey:    "default-key",
		StorePath: "default.json",
		Port:      8080,
		Models:    map[string]string{"lite": "small"},
	})

	assert.Equal(t, "explicit", merged.APIKey)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "default.json", merged.StorePath)
	assert.Equal(t, "small", merged.Models["lite"])
	assert.Empty(t, cfg.StorePath)
}

func TestResolveAPIKey(t *testing.T) {
	cfg := Config{Provider: "gemini", GeminiAPIKey: "g", AnthropicAPIKey: "a"}
	assert.Equal(t, "g", cfg.ResolveAPIKey())

	cfg.Provider = "claude"
	assert.Equal(t, "a", cfg.ResolveAPIKey())

	cfg.APIKey = "explicit"
	assert.Equal(t, "explicit", cfg.ResolveAPIKey())

	cfg = Config{Provider: "openai", GeminiAPIKey: "g"}
	assert.Empty(t, cfg.ResolveAPIKey())
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{Provider: "anthropic", Models: map[string]string{"lite": "claude-haiku-test", "advanced": " "}}

	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderAnthropic, llmCfg.Provider)
	assert.Equal(t, "claude-haiku-test", llmCfg.GetModel(llm.TierLite))
	assert.Equal(t, llm.DefaultAnthropicConfig().GetModel(llm.TierAdvanced), llmCfg.GetModel(llm.TierAdvanced))

	cfg.Provider = "openai"
	_, err = cfg.LLMConfig()
	assert.Error(t, err)
}

func TestGenerateOptions(t *testing.T) {
	cfg := Config{AITimeout: Duration(3 * time.Second), AIMaxRetries: 0}

	opts := cfg.GenerateOptions(llm.TierStandard, true)
	assert.Equal(t, 3*time.Second, opts.Timeout)
	assert.Zero(t, opts.MaxRetries)
	assert.True(t, opts.JSON)

	opts = (&Config{AIMaxRetries: 4}).GenerateOptions(llm.TierLite, false)
	assert.Equal(t, llm.DefaultTimeout, opts.Timeout)
	assert.Equal(t, 4, opts.MaxRetries)
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, Duration(90*time.Second), d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))
}
