package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pong struct {
	Symbol string `json:"symbol"`
	Limit  string `json:"limit"`
}

func TestRestyClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pong{Symbol: r.URL.Query().Get("symbol"), Limit: r.URL.Query().Get("limit")})
	}))
	defer srv.Close()

	client := New(nil, srv.URL, time.Second, "secret")
	var got pong
	resp, err := client.Get(context.Background(), "/api/v3/klines",
		map[string]string{"symbol": "BTCUSDT", "limit": "10"},
		map[string]string{"X-Test": "yes"}, &got)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, pong{Symbol: "BTCUSDT", Limit: "10"}, got)
}

func TestRestyClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"ok"}`))
	}))
	defer srv.Close()

	var got pong
	resp, err := New(nil, srv.URL, time.Second, "").Post(context.Background(), "/", map[string]string{"a": "b"}, nil, &got)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", got.Symbol)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRestyClient_ClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	defer srv.Close()

	resp, err := New(nil, srv.URL, time.Second, "").Get(context.Background(), "/x", nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, "missing", string(resp.Body))
}
