package ncprep

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interface that loggers must implement to get ncprep logs.
type Logger interface {
	Printf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// NopLogger logs nothing.
type NopLogger struct{}

// Printf does nothing.
func (NopLogger) Printf(format string, v ...interface{}) {}

// Debugf does nothing.
func (NopLogger) Debugf(format string, v ...interface{}) {}

// Warnf does nothing.
func (NopLogger) Warnf(format string, v ...interface{}) {}

// Errorf does nothing.
func (NopLogger) Errorf(format string, v ...interface{}) {}

// ZapLogger implements Logger on top of a zap SugaredLogger.
type ZapLogger struct {
	*zap.SugaredLogger
}

// NewZapLogger builds a console logger with colored levels writing to w, or
// to stderr when w is nil. Debug output is only enabled when verbose is set.
func NewZapLogger(verbose bool, w io.Writer) *ZapLogger {
	var ws zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if w != nil {
		ws = zapcore.AddSync(w)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, level)
	return &ZapLogger{SugaredLogger: zap.New(core).Sugar()}
}

// Printf logs at info level.
func (z *ZapLogger) Printf(format string, v ...interface{}) {
	z.SugaredLogger.Infof(format, v...)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (z *ZapLogger) Sync() {
	_ = z.SugaredLogger.Sync()
}
