package bpipe

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogUnhandledFailure(err error)
	LogUnterminatedPipeline(method, path string)
	LogResponseWriteError(err error)
	LogPatternHazard(pattern string)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogUnhandledFailure(err error) {
	l.Logger.Printf("bpipe: unhandled failure: %s", err)
}

func (l stdLogger) LogUnterminatedPipeline(method, path string) {
	l.Logger.Printf("bpipe: pipeline for %s %s did not produce a response", method, path)
}

func (l stdLogger) LogResponseWriteError(err error) {
	l.Logger.Printf("bpipe: error while writing response: %s", err)
}

func (l stdLogger) LogPatternHazard(pattern string) {
	l.Logger.Printf("bpipe: pattern %q has optional capture groups, unmatched groups read as absent", pattern)
}

func NewStdLogger(l *log.Logger) Logger {
	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogUnhandledFailure     int64
	NumLogUnterminatedPipeline int64
	NumLogResponseWriteError   int64
	NumLogPatternHazard        int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogUnhandledFailure(err error) {
	atomic.AddInt64(&l.NumLogUnhandledFailure, 1)
	l.logf("bpipe: unhandled failure: %s", err)
}

func (l *TestLogger) LogUnterminatedPipeline(method, path string) {
	atomic.AddInt64(&l.NumLogUnterminatedPipeline, 1)
	l.logf("bpipe: pipeline for %s %s did not produce a response", method, path)
}

func (l *TestLogger) LogResponseWriteError(err error) {
	atomic.AddInt64(&l.NumLogResponseWriteError, 1)
	l.logf("bpipe: error while writing response: %s", err)
}

func (l *TestLogger) LogPatternHazard(pattern string) {
	atomic.AddInt64(&l.NumLogPatternHazard, 1)
	l.logf("bpipe: pattern %q has optional capture groups", pattern)
}

func (l *TestLogger) logf(format string, args ...any) {
	if l.tb == nil {
		return
	}

	l.tb.Logf(format, args...)
}

var _ Logger = &TestLogger{}
