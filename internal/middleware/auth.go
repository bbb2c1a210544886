// Package middleware holds Fiber middleware shared by the HTTP routes.
package middleware

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quickanswer/internal/models"
)

// TokenVerifier checks a raw bearer token. *oidc.IDTokenVerifier satisfies it.
type TokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// AuthMiddleware rejects requests that do not carry a valid bearer token.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates an auth middleware over verifier.
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// NewOIDCAuthMiddleware discovers the issuer and verifies tokens issued for clientID.
func NewOIDCAuthMiddleware(ctx context.Context, issuer, clientID string, logger *zap.Logger) (*AuthMiddleware, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return NewAuthMiddleware(verifier, logger), nil
}

// RequireAuth verifies the Authorization header and stores the token subject in Locals("subject").
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	raw := ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
	if raw == "" {
		return unauthorized(c)
	}

	token, err := m.verifier.Verify(c.Context(), raw)
	if err != nil {
		m.logger.Debug("rejected bearer token", zap.Error(err))
		return unauthorized(c)
	}

	c.Locals("subject", token.Subject)
	return c.Next()
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>"
// header value, or "" if the header is not a bearer credential.
func ExtractBearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "unauthorized"})
}
