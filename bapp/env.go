package bapp

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	addr() string
	serviceName() string
	logLevel() zapcore.Level
	otelExporter() string
	healthPath() string
	metricsPath() string
	responseBufferLimit() int
	hideErrorDetails() bool
	h2c() bool
	serverTimeouts() (readHeader, write, idle time.Duration)
}

// BaseEnvironment contains the environment variables every app reads.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Addr         string        `env:"BP_ADDR" envDefault:":4000"`
	ServiceName  string        `env:"BP_SERVICE_NAME,required"`
	LogLevel     zapcore.Level `env:"BP_LOG_LEVEL" envDefault:"info"`
	OtelExporter string        `env:"BP_OTEL_EXPORTER" envDefault:"stdout"`
	HealthPath   string        `env:"BP_HEALTH_PATH" envDefault:"/healthz"`
	// MetricsPath serves the prometheus registry, an empty value disables the route.
	MetricsPath         string `env:"BP_METRICS_PATH" envDefault:"/metrics"`
	ResponseBufferLimit int    `env:"BP_RESPONSE_BUFFER_LIMIT" envDefault:"-1"`
	HideErrorDetails    bool   `env:"BP_HIDE_ERROR_DETAILS"`
	H2C                 bool   `env:"BP_H2C"`

	ReadHeaderTimeout time.Duration `env:"BP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"BP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"BP_IDLE_TIMEOUT" envDefault:"60s"`
}

func (e BaseEnvironment) addr() string             { return e.Addr }
func (e BaseEnvironment) serviceName() string      { return e.ServiceName }
func (e BaseEnvironment) logLevel() zapcore.Level  { return e.LogLevel }
func (e BaseEnvironment) otelExporter() string     { return e.OtelExporter }
func (e BaseEnvironment) healthPath() string       { return e.HealthPath }
func (e BaseEnvironment) metricsPath() string      { return e.MetricsPath }
func (e BaseEnvironment) responseBufferLimit() int { return e.ResponseBufferLimit }
func (e BaseEnvironment) hideErrorDetails() bool   { return e.HideErrorDetails }
func (e BaseEnvironment) h2c() bool                { return e.H2C }

func (e BaseEnvironment) serverTimeouts() (readHeader, write, idle time.Duration) {
	return e.ReadHeaderTimeout, e.WriteTimeout, e.IdleTimeout
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}

		return e, nil
	}
}
