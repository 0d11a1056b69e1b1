package dune

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(contract.UpstreamConfig{
		APIKey:       "secret",
		BaseURL:      srv.URL + "/api/v1",
		APIKeyHeader: "X-Dune-API-Key",
		TimeoutSec:   5,
		Timeout:      5 * time.Second,
	}, opts...)
}

func TestFetchRows(t *testing.T) {
	var gotPath, gotLimit, gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		gotKey = r.Header.Get("X-Dune-API-Key")
		_, _ = w.Write([]byte(`{"execution_id":"x","result":{"rows":[
			{"date_time":"2024-01-01 00:00:00.000 UTC","platform":"pump.fun","daily_token_count":10},
			{"date_time":"2024-01-01 00:00:00.000 UTC","platform":"letsbonk","daily_token_count":30.5}
		],"metadata":{}}}`))
	})

	rows, err := client.FetchRows(context.Background(), 4010816, 25)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/query/4010816/results", gotPath)
	assert.Equal(t, "25", gotLimit)
	assert.Equal(t, "secret", gotKey)

	require.Len(t, rows, 2)
	assert.Equal(t, "pump.fun", rows[0]["platform"])
	assert.Equal(t, json.Number("10"), rows[0]["daily_token_count"])
	assert.Equal(t, json.Number("30.5"), rows[1]["daily_token_count"])
}

func TestFetchRowsMissingShape(t *testing.T) {
	bodies := map[string]string{
		"no result":   `{}`,
		"null result": `{"result":null}`,
		"no rows":     `{"result":{}}`,
		"null rows":   `{"result":{"rows":null}}`,
		"empty rows":  `{"result":{"rows":[]}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			rows, err := client.FetchRows(context.Background(), 1, 10)
			require.NoError(t, err)
			assert.NotNil(t, rows)
			assert.Empty(t, rows)
		})
	}
}

func TestFetchRowsHTTPStatus(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"invalid API Key"}`, http.StatusUnauthorized)
		})
		_, err := client.FetchRows(context.Background(), 4010816, 1000)
		require.Error(t, err)

		var statusErr *HTTPStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "client error '401 Unauthorized'")
		assert.Contains(t, err.Error(), "/query/4010816/results")
		assert.Contains(t, err.Error(), "invalid API Key")
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.FetchRows(context.Background(), 1, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server error '502 Bad Gateway'")
	})
}

func TestFetchRowsDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})
	_, err := client.FetchRows(context.Background(), 1, 10)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestFetchRowsTransportError(t *testing.T) {
	client := NewClient(contract.UpstreamConfig{
		BaseURL:      "http://127.0.0.1:1",
		APIKeyHeader: "X-Dune-API-Key",
		Timeout:      time.Second,
	})
	_, err := client.FetchRows(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request to")
}

func TestFetchRowsEmptyKeyStillSendsHeader(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["X-Dune-Api-Key"]
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(contract.UpstreamConfig{
		BaseURL:      srv.URL,
		APIKeyHeader: "X-Dune-API-Key",
		Timeout:      time.Second,
	})
	_, err := client.FetchRows(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, present, "header should be sent even when the key is empty")
}

func TestFetchRowsObserver(t *testing.T) {
	var statuses []int
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"rows":[]}}`))
	}, WithObserver(func(status int, seconds float64) {
		statuses = append(statuses, status)
		assert.GreaterOrEqual(t, seconds, 0.0)
	}))

	_, err := client.FetchRows(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{http.StatusOK}, statuses)
}

func TestResultsURL(t *testing.T) {
	client := NewClient(contract.UpstreamConfig{BaseURL: "https://api.dune.com/api/v1"})
	assert.Equal(t, "https://api.dune.com/api/v1/query/5131612/results?limit=1000", client.ResultsURL(5131612, 1000))
}
