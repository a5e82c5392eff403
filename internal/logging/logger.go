// Package logging builds the zap loggers used by the terminal and the chat server.
// The terminal owns stdout, so it only ever logs to a rotating file.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// FilePath is the log file; empty disables file logging.
	FilePath string
	// Level is one of debug, info, warn, error.
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// NewFileLogger logs JSON to a rotating file, or nowhere when no file is configured.
func NewFileLogger(cfg Config) (*zap.Logger, error) {
	if cfg.FilePath == "" {
		return zap.NewNop(), nil
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	return newLogger(cfg.Level, &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	})
}

// NewConsoleLogger logs to stderr with zap's production settings.
func NewConsoleLogger(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// NewWriterLogger logs JSON to w. Tests use it with a buffer.
func NewWriterLogger(level string, w io.Writer) (*zap.Logger, error) {
	return newLogger(level, w)
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(l))
	return zap.New(core), nil
}

// Sync flushes the logger. Syncing stderr fails on some terminals; that is ignored.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}
