package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewClientAppliesOptions(t *testing.T) {
	client := NewClient(WithRequestTimeout(5 * time.Second))
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestRequestLoggingRedactsAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	client := NewClient(WithRequestLogging())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer sk-secret")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, 2, logs.Len())
	headers, ok := logs.All()[0].ContextMap()["headers"].(http.Header)
	require.True(t, ok)
	assert.Equal(t, "***", headers.Get("Authorization"))
	assert.EqualValues(t, http.StatusTeapot, logs.All()[1].ContextMap()["status"])
	assert.Equal(t, "Bearer sk-secret", req.Header.Get("Authorization"))
}
