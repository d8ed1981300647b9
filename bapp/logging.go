package bapp

import (
	"github.com/advdv/bpipe"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment.
// Uses JSON encoding, BP_LOG_LEVEL controls the level (debug, info, warn, error).
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logs, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logs.With(zap.String("service", env.serviceName())), nil
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogUnhandledFailure(err error) {
	l.Logger.Error("unhandled failure", zap.Error(err))
}

func (l zapLogger) LogUnterminatedPipeline(method, path string) {
	l.Logger.Error("pipeline did not produce a response",
		zap.String("method", method), zap.String("path", path))
}

func (l zapLogger) LogResponseWriteError(err error) {
	l.Logger.Warn("error while writing response", zap.Error(err))
}

func (l zapLogger) LogPatternHazard(pattern string) {
	l.Logger.Warn("route has optional capture groups, unmatched groups read as absent",
		zap.String("route", pattern))
}

func newZapPipeLogger(l *zap.Logger) bpipe.Logger {
	return zapLogger{l.Named("bpipe").Named("bapp")}
}
