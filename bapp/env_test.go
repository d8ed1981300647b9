package bapp_test

import (
	"testing"
	"time"

	"github.com/advdv/bpipe/bapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseEnv_Defaults(t *testing.T) {
	t.Setenv("BP_SERVICE_NAME", "orders")

	env, err := bapp.ParseEnv[bapp.BaseEnvironment]()()
	require.NoError(t, err)

	assert.Equal(t, ":4000", env.Addr)
	assert.Equal(t, "orders", env.ServiceName)
	assert.Equal(t, zapcore.InfoLevel, env.LogLevel)
	assert.Equal(t, "stdout", env.OtelExporter)
	assert.Equal(t, "/healthz", env.HealthPath)
	assert.Equal(t, "/metrics", env.MetricsPath)
	assert.Equal(t, -1, env.ResponseBufferLimit)
	assert.False(t, env.HideErrorDetails)
	assert.False(t, env.H2C)
	assert.Equal(t, 5*time.Second, env.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, env.WriteTimeout)
	assert.Equal(t, 60*time.Second, env.IdleTimeout)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("BP_SERVICE_NAME", "orders")
	t.Setenv("BP_ADDR", "127.0.0.1:9000")
	t.Setenv("BP_RESPONSE_BUFFER_LIMIT", "1024")
	t.Setenv("BP_HIDE_ERROR_DETAILS", "true")
	t.Setenv("BP_WRITE_TIMEOUT", "2s")

	env, err := bapp.ParseEnv[bapp.BaseEnvironment]()()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", env.Addr)
	assert.Equal(t, 1024, env.ResponseBufferLimit)
	assert.True(t, env.HideErrorDetails)
	assert.Equal(t, 2*time.Second, env.WriteTimeout)
}

func TestParseEnv_MissingServiceName(t *testing.T) {
	t.Setenv("BP_SERVICE_NAME", "")

	_, err := bapp.ParseEnv[bapp.BaseEnvironment]()()
	require.ErrorContains(t, err, "BP_SERVICE_NAME")
}
