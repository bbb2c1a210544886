package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVerifier struct {
	valid string
}

func (f fakeVerifier) Verify(ctx context.Context, raw string) (*oidc.IDToken, error) {
	if raw != f.valid {
		return nil, errors.New("invalid token")
	}
	return &oidc.IDToken{Subject: "svc-account"}, nil
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer token123", "token123"},
		{"extra spaces", "  Bearer   token123  ", "token123"},
		{"basic scheme", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractBearerToken(tt.header))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(fakeVerifier{valid: "good"}, zap.NewNop())

	app := fiber.New()
	app.Get("/protected", m.RequireAuth, func(c fiber.Ctx) error {
		subject, _ := c.Locals("subject").(string)
		return c.SendString(subject)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", fiber.StatusOK, "svc-account"},
		{"invalid token", "Bearer bad", fiber.StatusUnauthorized, `{"error":"unauthorized"}`},
		{"missing header", "", fiber.StatusUnauthorized, `{"error":"unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}
