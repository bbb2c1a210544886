// Package model is the client for the remote text-generation service.
package model

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"quickanswer/internal/config"
	"quickanswer/internal/gateway"
)

const serviceName = "model"

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Client calls a text-generation-inference style endpoint:
// POST {base}/models/{model} with {"inputs": ..., "parameters": ...}.
type Client struct {
	http   *resty.Client
	path   string
	logger *zap.Logger
}

type generateRequest struct {
	Inputs     string `json:"inputs"`
	Parameters Params `json:"parameters"`
}

// NewClient creates a model gateway client. Every request is authorised with a
// token from ts; a nil ts sends no Authorization header.
func NewClient(cfg *config.Config, ts oauth2.TokenSource, logger *zap.Logger) *Client {
	httpClient := &http.Client{}
	if ts != nil {
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.ModelTimeout

	client := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(cfg.ModelBaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Client{
		http:   client,
		path:   "/models/" + escapeModelID(cfg.ModelID),
		logger: logger,
	}
}

// Generate sends one prompt and returns the trimmed generated text.
func (c *Client) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Inputs: prompt, Parameters: params}).
		Post(c.path)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}

	if !resp.IsSuccess() {
		c.logger.Warn("model gateway returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", &gateway.StatusError{Service: serviceName, Code: resp.StatusCode(), Body: resp.String()}
	}

	return parseGeneration(resp.Body())
}

// parseGeneration accepts [{"generated_text": ...}] and {"generated_text": ...}.
func parseGeneration(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: response is not JSON", gateway.ErrMalformedResponse)
	}

	parsed := gjson.ParseBytes(body)
	var text gjson.Result
	if parsed.IsArray() {
		text = parsed.Get("0.generated_text")
	} else {
		text = parsed.Get("generated_text")
	}

	if text.Type != gjson.String {
		return "", fmt.Errorf("%w: generated_text missing", gateway.ErrMalformedResponse)
	}
	return strings.TrimSpace(text.String()), nil
}

// escapeModelID keeps the owner/name separator while escaping each part.
func escapeModelID(id string) string {
	parts := strings.Split(id, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
