package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quickanswer/internal/config"
	"quickanswer/internal/gateway"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.Config{
		SearchBaseURL: srv.URL,
		SearchAPIKey:  "bing-key",
		SearchTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7.0/search", r.URL.Path)
		assert.Equal(t, "who is the mayor & why?", r.URL.Query().Get("q"))
		assert.Equal(t, "bing-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		_, _ = w.Write([]byte(`{
			"webPages": {"value": [
				{"name": "a", "snippet": "The mayor is currently John Smith."},
				{"name": "b"},
				{"name": "c", "snippet": "Random trivia."}
			]}
		}`))
	})

	snippets, err := client.Search(context.Background(), "who is the mayor & why?")

	require.NoError(t, err)
	assert.Equal(t, []string{"The mayor is currently John Smith.", "Random trivia."}, snippets)
}

func TestClient_SearchNoWebPages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_type": "SearchResponse"}`))
	})

	snippets, err := client.Search(context.Background(), "q")

	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestClient_SearchStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"code": "401"}}`))
	})

	_, err := client.Search(context.Background(), "q")

	var statusErr *gateway.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestClient_SearchMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.Search(context.Background(), "q")

	assert.ErrorIs(t, err, gateway.ErrMalformedResponse)
	assert.False(t, gateway.IsStatusError(err))
}

func TestClient_SearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(&config.Config{SearchBaseURL: srv.URL, SearchTimeout: time.Second}, zap.NewNop())

	_, err := client.Search(context.Background(), "q")

	require.Error(t, err)
	assert.False(t, gateway.IsStatusError(err))
}
