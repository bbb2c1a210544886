package model

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/google"

	"quickanswer/internal/config"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// TokenSource builds the bearer-token source for the configured credential source.
// Static API keys, OAuth2 client credentials and service-account key files are supported.
func TokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	switch cfg.ModelCredentialSource {
	case config.CredentialAPIKey, "":
		if cfg.ModelAPIKey == "" {
			return nil, fmt.Errorf("%w: MODEL_API_KEY is empty", ErrMissingCredentials)
		}
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.ModelAPIKey,
			TokenType:   "Bearer",
		}), nil

	case config.CredentialClientCredentials:
		cc := clientcredentials.Config{
			ClientID:     cfg.ModelClientID,
			ClientSecret: cfg.ModelClientSecret,
			TokenURL:     cfg.ModelTokenURL,
		}
		return cc.TokenSource(ctx), nil

	case config.CredentialServiceAccount:
		data, err := os.ReadFile(cfg.ModelServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account file: %w", err)
		}
		jwtCfg, err := google.JWTConfigFromJSON(data, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account file: %w", err)
		}
		return jwtCfg.TokenSource(ctx), nil

	default:
		return nil, fmt.Errorf("unknown credential source %q", cfg.ModelCredentialSource)
	}
}
