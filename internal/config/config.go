package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"quickanswer/internal/validation"
)

// Credential sources understood by the model gateway client.
const (
	CredentialAPIKey            = "api_key"
	CredentialClientCredentials = "client_credentials"
	CredentialServiceAccount    = "service_account"
)

// Prompt modes for the model gateway.
const (
	PromptPlain      = "plain"
	PromptStructured = "structured"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string `validate:"required"` // "development", "production", etc.

	// Surfaces
	EnableHTTP  bool
	EnableAgent bool

	// Server
	ServerAddr string `validate:"required"`

	// Database (optional, outcome counters only)
	DatabaseURL string

	// Message bus and agent directory
	RedisURL              string `validate:"required_if=EnableAgent true"`
	DirectoryURL          string `validate:"required_if=EnableAgent true"`
	RegistrationHeartbeat time.Duration

	// Model gateway
	ModelBaseURL            string `validate:"required,url"`
	ModelID                 string `validate:"required"`
	ModelCredentialSource   string `validate:"oneof=api_key client_credentials service_account"`
	ModelAPIKey             string
	ModelTokenURL           string `validate:"required_if=ModelCredentialSource client_credentials"`
	ModelClientID           string `validate:"required_if=ModelCredentialSource client_credentials"`
	ModelClientSecret       string
	ModelServiceAccountFile string        `validate:"required_if=ModelCredentialSource service_account"`
	ModelPromptMode         string        `validate:"oneof=plain structured"`
	ModelTimeout            time.Duration `validate:"gt=0"`

	// Search gateway
	SearchBaseURL string `validate:"required,url"`
	SearchAPIKey  string
	SearchTimeout time.Duration `validate:"gt=0"`

	// OIDC bearer-token check on the HTTP surface (disabled when issuer is empty)
	OIDCIssuer   string
	OIDCClientID string `validate:"required_with=OIDCIssuer"`

	// Path of the optional YAML file with the agent descriptor and indicator extensions
	ConfigFile string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment take precedence.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:                     getEnv("ENV", "development"),
		EnableHTTP:              getBool("ENABLE_HTTP", true),
		EnableAgent:             getBool("ENABLE_AGENT", false),
		ServerAddr:              getEnv("SERVER_ADDR", ":5000"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		RedisURL:                getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DirectoryURL:            getEnv("DIRECTORY_URL", "http://localhost:5000"),
		RegistrationHeartbeat:   getDuration("REGISTRATION_HEARTBEAT", 0),
		ModelBaseURL:            getEnv("MODEL_BASE_URL", "https://api-inference.huggingface.co"),
		ModelID:                 getEnv("MODEL_ID", "meta-llama/Llama-3.2-3B-Instruct"),
		ModelCredentialSource:   getEnv("MODEL_CREDENTIAL_SOURCE", CredentialAPIKey),
		ModelAPIKey:             getEnv("MODEL_API_KEY", os.Getenv("HUGGINGFACE_API_KEY")),
		ModelTokenURL:           getEnv("MODEL_TOKEN_URL", ""),
		ModelClientID:           getEnv("MODEL_CLIENT_ID", ""),
		ModelClientSecret:       getEnv("MODEL_CLIENT_SECRET", ""),
		ModelServiceAccountFile: getEnv("MODEL_SERVICE_ACCOUNT_FILE", ""),
		ModelPromptMode:         getEnv("MODEL_PROMPT_MODE", PromptPlain),
		ModelTimeout:            getDuration("MODEL_TIMEOUT", 30*time.Second),
		SearchBaseURL:           getEnv("SEARCH_BASE_URL", "https://api.bing.microsoft.com"),
		SearchAPIKey:            getEnv("SEARCH_API_KEY", os.Getenv("BING_API_KEY")),
		SearchTimeout:           getDuration("SEARCH_TIMEOUT", 10*time.Second),
		OIDCIssuer:              getEnv("OIDC_ISSUER", ""),
		OIDCClientID:            getEnv("OIDC_CLIENT_ID", ""),
		ConfigFile:              getEnv("CONFIG_FILE", "config.yaml"),
	}
}

// Validate checks required settings and cross-field constraints.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go duration strings ("15s") or plain seconds ("15").
func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsOIDCEnabled returns true if bearer tokens must be verified on the HTTP surface.
func (c *Config) IsOIDCEnabled() bool {
	return c.OIDCIssuer != ""
}
