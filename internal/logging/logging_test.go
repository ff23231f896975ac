package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		enabled bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"e", zapcore.ErrorLevel, true},
		{"quiet", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, enabled := ParseLevel(tt.in)
		if got != tt.want || enabled != tt.enabled {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, enabled, tt.want, tt.enabled)
		}
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fileview.log")

	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hello")
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("Expected info message in log, got %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("Debug message should be filtered at info level")
	}
	if !strings.Contains(out, "session_id") {
		t.Error("Expected session_id field")
	}
}

func TestNew_QuietIsNop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fileview.log")

	logger, err := New("quiet", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Error("nothing")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Quiet logger should not create a log file")
	}
}
