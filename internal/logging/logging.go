package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the component-tagged logger every package accepts.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Warnf(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// Options configures NewZap.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Console selects the human-readable encoder instead of JSON.
	Console bool
	// Path appends log output to a file; empty logs to stderr.
	Path string
}

// ZapLogger writes through a zap SugaredLogger, one named child per component.
type ZapLogger struct {
	base  *zap.SugaredLogger
	level zap.AtomicLevel
}

func NewZap(opts Options) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Console {
		cfg = zap.NewDevelopmentConfig()
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	if opts.Path != "" {
		cfg.OutputPaths = []string{opts.Path}
		cfg.ErrorOutputPaths = []string{opts.Path}
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &ZapLogger{base: logger.Sugar(), level: cfg.Level}, nil
}

// NewZapFromCore wraps an existing core; tests pass an observer core.
func NewZapFromCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{base: zap.New(core).Sugar(), level: zap.NewAtomicLevel()}
}

func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}

// SetLevel changes the level of a logger built by NewZap at runtime.
func (l *ZapLogger) SetLevel(level zapcore.Level) { l.level.SetLevel(level) }

func (l *ZapLogger) Infof(component, format string, args ...interface{}) {
	l.base.Named(component).Infof(format, args...)
}

func (l *ZapLogger) Warnf(component, format string, args ...interface{}) {
	l.base.Named(component).Warnf(format, args...)
}

func (l *ZapLogger) Errorf(component, format string, args ...interface{}) {
	l.base.Named(component).Errorf(format, args...)
}

func (l *ZapLogger) Sync() error { return l.base.Sync() }
