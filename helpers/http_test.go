package helpers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "batteryspec/worker/pkg/errors"
)

func TestFetchWithRandomHeaders(t *testing.T) {
	var gotUA, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<html><body>Voltage (V): 12</body></html>")
	}))
	defer server.Close()

	body, err := FetchWithRandomHeaders(context.Background(), server.URL)
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Voltage (V): 12")

	assert.Contains(t, userAgents, gotUA)
	assert.Contains(t, referers, gotReferer)
}

func TestFetchWithRandomHeadersRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := FetchWithRandomHeaders(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrorTypeRateLimit, apperr.TypeOf(err))
	assert.False(t, apperr.Retryable(err))
	assert.Contains(t, err.Error(), "30")
}

func TestFetchWithRandomHeadersServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchWithRandomHeaders(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrorTypeNetwork, apperr.TypeOf(err))
	assert.True(t, apperr.Retryable(err))
}

func TestFetchWithRandomHeadersTranscodesToUTF8(t *testing.T) {
	// ISO-8859-1 body with a 0xE9 byte ("é"); must come back as UTF-8.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("caf\xe9"))
	}))
	defer server.Close()

	body, err := FetchWithRandomHeaders(context.Background(), server.URL)
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "café"))
}

func TestFetchWithRandomHeadersContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchWithRandomHeaders(ctx, server.URL)
	assert.Error(t, err)
}
