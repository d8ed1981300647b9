package bapp

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type testEnv struct {
	level   zapcore.Level
	otelExp string
}

func (e testEnv) addr() string             { return "localhost:0" }
func (e testEnv) serviceName() string      { return "test" }
func (e testEnv) logLevel() zapcore.Level  { return e.level }
func (e testEnv) healthPath() string       { return "/health" }
func (e testEnv) metricsPath() string      { return "/metrics" }
func (e testEnv) responseBufferLimit() int { return -1 }
func (e testEnv) hideErrorDetails() bool   { return false }
func (e testEnv) h2c() bool                { return false }
func (e testEnv) otelExporter() string {
	if e.otelExp == "" {
		return "stdout"
	}
	return e.otelExp
}

func (e testEnv) serverTimeouts() (readHeader, write, idle time.Duration) {
	return time.Second, time.Second, time.Second
}
