// Package logging builds the zap logger used across autotype.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultLevel = "warn"

	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Config selects the log level and sinks.
type Config struct {
	Level string
	// File is an optional JSON log file, rotated by size.
	File string
	// Console receives human-readable entries. Nil disables the console sink,
	// which is what the TUI wants while it owns the terminal.
	Console io.Writer
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// New returns a logger and a flush function to call before exit.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	atomic := zap.NewAtomicLevelAt(level)

	var cores []zapcore.Core
	closers := []func() error{}
	if cfg.Console != nil {
		cores = append(cores, zapcore.NewCore(encoder(true), zapcore.Lock(zapcore.AddSync(cfg.Console)), atomic))
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(encoder(false), zapcore.AddSync(rotator), atomic))
		closers = append(closers, rotator.Close)
	}
	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("autotype")
	flush := func() {
		// Sync on a terminal returns EINVAL on some platforms.
		_ = logger.Sync()
		for _, closeFn := range closers {
			_ = closeFn()
		}
	}
	return logger, flush, nil
}

func encoder(console bool) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if console {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}
