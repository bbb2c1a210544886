// Package search is the client for the remote web-search service.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"quickanswer/internal/config"
	"quickanswer/internal/gateway"
)

const (
	serviceName  = "search"
	searchPath   = "/v7.0/search"
	apiKeyHeader = "Ocp-Apim-Subscription-Key"
)

// Client queries a Bing-compatible web search API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a search gateway client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.SearchBaseURL, "/")).
		SetTimeout(cfg.SearchTimeout).
		SetHeader("Accept", "application/json").
		SetHeader(apiKeyHeader, cfg.SearchAPIKey).
		SetRetryCount(0)

	return &Client{http: client, logger: logger}
}

// Search returns the snippets of the web results for query, in ranking order.
// A non-success status is reported as *gateway.StatusError; any other failure
// is a plain wrapped error.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &gateway.StatusError{Service: serviceName, Code: resp.StatusCode(), Body: resp.String()}
	}

	snippets, err := parseSnippets(resp.Body())
	if err != nil {
		return nil, err
	}
	c.logger.Debug("search results received", zap.Int("snippets", len(snippets)))
	return snippets, nil
}

// parseSnippets reads webPages.value[].snippet. Results without a snippet are skipped.
func parseSnippets(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not JSON", gateway.ErrMalformedResponse)
	}

	values := gjson.GetBytes(body, "webPages.value")
	if !values.IsArray() {
		return []string{}, nil
	}

	snippets := make([]string, 0, len(values.Array()))
	values.ForEach(func(_, result gjson.Result) bool {
		if s := result.Get("snippet"); s.Type == gjson.String {
			snippets = append(snippets, s.String())
		}
		return true
	})
	return snippets, nil
}
