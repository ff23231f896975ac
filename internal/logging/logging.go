// Package logging builds the zap logger used across fileview.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level.
// "quiet" reports ok=false, meaning logging is disabled.
func ParseLevel(s string) (level zapcore.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "q", "off":
		return zapcore.InfoLevel, false
	case "debug", "d", "verbose", "v":
		return zapcore.DebugLevel, true
	case "warn", "warning", "w":
		return zapcore.WarnLevel, true
	case "error", "e":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, true
	}
}

// New returns a JSON logger appending to path. The terminal belongs to the
// TUI, so nothing is written to stdout or stderr.
func New(level, path string) (*zap.Logger, error) {
	lvl, enabled := ParseLevel(level)
	if !enabled {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.With(zap.String("session_id", uuid.NewString())), nil
}
