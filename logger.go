package bresp

import (
	"log"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogUnhandledServeError(err error)
	LogSendError(err error)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogUnhandledServeError(err error) {
	l.Logger.Printf("bresp: unhandled server error: %s", err)
}

func (l stdLogger) LogSendError(err error) {
	l.Logger.Printf("bresp: error while sending response: %s", err)
}

func NewStdLogger(l *log.Logger) Logger {
	return stdLogger{l}
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogUnhandledServeError(err error) {
	l.Logger.Error("unhandled server error", zap.Error(err))
}

func (l zapLogger) LogSendError(err error) {
	l.Logger.Error("error while sending response", zap.Error(err))
}

// NewZapLogger adapts a zap logger to the [Logger] interface. It
// mirrors [NewStdLogger] for deployments that log structurally.
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{l.Named("bresp")}
}

type TestLogger struct {
	tb testing.TB

	NumLogUnhandledServeError int64
	NumLogSendError           int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogUnhandledServeError(err error) {
	atomic.AddInt64(&l.NumLogUnhandledServeError, 1)
	l.tb.Logf("bresp: unhandled server error: %s", err)
}

func (l *TestLogger) LogSendError(err error) {
	atomic.AddInt64(&l.NumLogSendError, 1)
	l.tb.Logf("bresp: error while sending response: %s", err)
}

var _ Logger = &TestLogger{}
