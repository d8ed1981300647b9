package bapptest

import (
	"fmt"
	"testing"
)

// Env provides a chainable builder for setting [bapp.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [bapp.BaseEnvironment] env vars to sensible test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - BP_ADDR: "localhost:<port>"
//   - BP_SERVICE_NAME: "test"
//   - BP_OTEL_EXPORTER: "none"
//   - BP_HEALTH_PATH: "/health"
//   - AWS_REGION: "us-east-1"
//   - AWS_ACCESS_KEY_ID: "test"
//   - AWS_SECRET_ACCESS_KEY: "test"
//
// Use the returned [Env] to override individual values:
//
//	bapptest.SetBaseEnv(t, 18085).ServiceName("orders").HealthPath("/ready")
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("BP_ADDR", fmt.Sprintf("localhost:%d", port))
	t.Setenv("BP_SERVICE_NAME", "test")
	t.Setenv("BP_OTEL_EXPORTER", "none")
	t.Setenv("BP_HEALTH_PATH", "/health")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	return &Env{t: t}
}

// ServiceName overrides BP_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("BP_SERVICE_NAME", name)

	return e
}

// HealthPath overrides BP_HEALTH_PATH.
func (e *Env) HealthPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("BP_HEALTH_PATH", path)

	return e
}

// MetricsPath overrides BP_METRICS_PATH.
func (e *Env) MetricsPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("BP_METRICS_PATH", path)

	return e
}

// HideErrorDetails sets BP_HIDE_ERROR_DETAILS.
func (e *Env) HideErrorDetails() *Env {
	e.t.Helper()
	e.t.Setenv("BP_HIDE_ERROR_DETAILS", "true")

	return e
}

// ResponseBufferLimit overrides BP_RESPONSE_BUFFER_LIMIT.
func (e *Env) ResponseBufferLimit(n int) *Env {
	e.t.Helper()
	e.t.Setenv("BP_RESPONSE_BUFFER_LIMIT", fmt.Sprint(n))

	return e
}
