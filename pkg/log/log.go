// Package log is a thin facade over zap. Callers depend on the Logger
// interface so tests can drop in a no-op or recording implementation.
package log

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging contract the rest of the app consumes.
type Logger interface {
	Debug(ctx context.Context, args ...any)
	Debugf(ctx context.Context, format string, args ...any)
	Info(ctx context.Context, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warn(ctx context.Context, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Error(ctx context.Context, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}

// ZapConfig tunes the zap-backed logger.
type ZapConfig struct {
	Level    string // debug | info | warn | error
	Encoding string // console | json
	File     string // log file path; empty logs to stderr
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// Init builds the zap-backed Logger. Invalid levels fall back to info,
// an unwritable log file falls back to stderr; logging setup must never
// keep the app from starting.
func Init(cfg ZapConfig) Logger {
	level := zapcore.InfoLevel
	if l, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = l
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Encoding == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.Lock(os.Stderr)
	if cfg.File != "" {
		if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			sink = zapcore.Lock(f)
		}
	}

	core := zapcore.NewCore(enc, sink, level)
	return &zapLogger{sugar: zap.New(core).Sugar()}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debug(_ context.Context, args ...any) { l.sugar.Debug(args...) }
func (l *zapLogger) Debugf(_ context.Context, format string, args ...any) {
	l.sugar.Debugf(format, args...)
}
func (l *zapLogger) Info(_ context.Context, args ...any) { l.sugar.Info(args...) }
func (l *zapLogger) Infof(_ context.Context, format string, args ...any) {
	l.sugar.Infof(format, args...)
}
func (l *zapLogger) Warn(_ context.Context, args ...any) { l.sugar.Warn(args...) }
func (l *zapLogger) Warnf(_ context.Context, format string, args ...any) {
	l.sugar.Warnf(format, args...)
}
func (l *zapLogger) Error(_ context.Context, args ...any) { l.sugar.Error(args...) }
func (l *zapLogger) Errorf(_ context.Context, format string, args ...any) {
	l.sugar.Errorf(format, args...)
}
