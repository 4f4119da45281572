package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	l *zap.Logger
	s *zap.SugaredLogger
}

func New(l *zap.Logger) *Logger {
	return &Logger{l: l, s: l.Sugar()}
}

// NewFromConfig builds a production logger for env "production" and a
// colored development logger otherwise.
func NewFromConfig(env, level string) (*Logger, error) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return New(l), nil
}

func NewNop() *Logger {
	return New(zap.NewNop())
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.s.Errorf(format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.s.Infof(format, v...)
}

func (l *Logger) LogWarn(format string, v ...any) {
	l.s.Warnf(format, v...)
}

// With returns a child logger that attaches fields to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return New(l.l.With(fields...))
}

func (l *Logger) Zap() *zap.Logger {
	return l.l
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}
