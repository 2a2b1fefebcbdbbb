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
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bizdate.log")

	logger, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New(%v) error = %v", path, err)
	}
	logger.Debug("offset computed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"offset computed"`) {
		t.Errorf("log file = %q, want JSON entry", data)
	}
	if !strings.Contains(string(data), `"timestamp"`) {
		t.Errorf("log file = %q, want timestamp key", data)
	}
}

func TestNewFileLoggerRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bizdate.log")

	logger, err := NewFileLogger(path, "warn")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Errorf("info entry written at warn level: %q", data)
	}
	if !strings.Contains(string(data), "shown") {
		t.Errorf("warn entry missing: %q", data)
	}
}
