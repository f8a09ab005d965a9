package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	z *zap.Logger
	s *zap.SugaredLogger
}

// NewLogger mantiene la firma original: consola, nivel info, stderr.
func NewLogger(withTimestamp bool) *Logger {
	lg, err := NewLoggerWith("info", "console", withTimestamp)
	if err != nil {
		return NewNopLogger()
	}
	return lg
}

// NewLoggerWith construye el logger a partir de nivel (debug|info|warn|error)
// y formato (console|json).
func NewLoggerWith(level, format string, withTimestamp bool) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if !withTimestamp {
		encCfg.TimeKey = ""
	}

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "", "console", "text":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(lvl))
	return FromZap(zap.New(core)), nil
}

func NewNopLogger() *Logger {
	return FromZap(zap.NewNop())
}

// FromZap envuelve un *zap.Logger ya construido.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{z: z, s: z.Sugar()}
}

// With devuelve un logger hijo con campos fijos (run_id, stage, ...).
func (lg *Logger) With(keysAndValues ...any) *Logger {
	s := lg.s.With(keysAndValues...)
	return &Logger{z: s.Desugar(), s: s}
}

func (lg *Logger) Debug(format string, args ...any) {
	lg.s.Debugf(format, args...)
}

func (lg *Logger) Info(format string, args ...any) {
	lg.s.Infof(format, args...)
}

func (lg *Logger) Warn(format string, args ...any) {
	lg.s.Warnf(format, args...)
}

func (lg *Logger) Error(format string, args ...any) {
	lg.s.Errorf(format, args...)
}

func (lg *Logger) Sync() error {
	return lg.z.Sync()
}
