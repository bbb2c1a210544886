package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                   "test",
		ServerAddr:            ":5000",
		ModelBaseURL:          "https://api-inference.huggingface.co",
		ModelID:               "meta-llama/Llama-3.2-3B-Instruct",
		ModelCredentialSource: CredentialAPIKey,
		ModelPromptMode:       PromptPlain,
		ModelTimeout:          30 * time.Second,
		SearchBaseURL:         "https://api.bing.microsoft.com",
		SearchTimeout:         10 * time.Second,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MODEL_TIMEOUT", "")
	t.Setenv("SERVER_ADDR", "")

	cfg := Load()

	assert.Equal(t, ":5000", cfg.ServerAddr)
	assert.Equal(t, 30*time.Second, cfg.ModelTimeout)
	assert.Equal(t, CredentialAPIKey, cfg.ModelCredentialSource)
	assert.True(t, cfg.EnableHTTP)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("MODEL_TIMEOUT", "5")
	t.Setenv("SEARCH_TIMEOUT", "1500ms")
	t.Setenv("ENABLE_AGENT", "true")
	t.Setenv("ENABLE_HTTP", "not-a-bool")
	t.Setenv("REGISTRATION_HEARTBEAT", "1m")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 5*time.Second, cfg.ModelTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.SearchTimeout)
	assert.True(t, cfg.EnableAgent)
	assert.True(t, cfg.EnableHTTP, "unparsable bool falls back to default")
	assert.Equal(t, time.Minute, cfg.RegistrationHeartbeat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing model url", func(c *Config) { c.ModelBaseURL = "" }, true},
		{"unknown credential source", func(c *Config) { c.ModelCredentialSource = "magic" }, true},
		{"client credentials without token url", func(c *Config) {
			c.ModelCredentialSource = CredentialClientCredentials
			c.ModelClientID = "id"
		}, true},
		{"client credentials complete", func(c *Config) {
			c.ModelCredentialSource = CredentialClientCredentials
			c.ModelClientID = "id"
			c.ModelTokenURL = "https://auth.example.com/token"
		}, false},
		{"service account without file", func(c *Config) { c.ModelCredentialSource = CredentialServiceAccount }, true},
		{"unknown prompt mode", func(c *Config) { c.ModelPromptMode = "fancy" }, true},
		{"zero search timeout", func(c *Config) { c.SearchTimeout = 0 }, true},
		{"agent without redis", func(c *Config) {
			c.EnableAgent = true
			c.DirectoryURL = "http://localhost:5000"
		}, true},
		{"agent complete", func(c *Config) {
			c.EnableAgent = true
			c.RedisURL = "redis://localhost:6379/0"
			c.DirectoryURL = "http://localhost:5000"
		}, false},
		{"oidc issuer without client id", func(c *Config) { c.OIDCIssuer = "https://issuer.example.com" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		cfg, err := LoadYAMLConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Nil(t, cfg)
		assert.Equal(t, "general_questions", cfg.AgentIdentifier("general_questions"))
		assert.Nil(t, cfg.ExtraKeywords())
	})

	t.Run("parses agent and extensions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
agent:
  identifier: trivia
  purpose:
    - Answer trivia
  agent_type: qa
indicators:
  real_time:
    - "my knowledge cutoff"
  generic:
    - "I cannot help"
keywords:
  - recent
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadYAMLConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "trivia", cfg.AgentIdentifier("general_questions"))
		assert.Equal(t, []string{"Answer trivia"}, cfg.AgentPurpose(nil))
		assert.Equal(t, "qa", cfg.AgentType("other"))
		assert.Equal(t, []string{"my knowledge cutoff"}, cfg.ExtraRealTimeIndicators())
		assert.Equal(t, []string{"I cannot help"}, cfg.ExtraGenericIndicators())
		assert.Equal(t, []string{"recent"}, cfg.ExtraKeywords())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("agent: [unterminated"), 0o600))

		_, err := LoadYAMLConfig(path)
		assert.Error(t, err)
	})
}
