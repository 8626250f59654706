package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitDebugModeMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	err := Init(Config{
		Debug:     true,
		ConfigDir: t.TempDir(),
		Stderr:    &stderr,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("plan loaded", "source", "cache")
	if !strings.Contains(stderr.String(), "plan loaded") {
		t.Errorf("debug output not mirrored, got %q", stderr.String())
	}
}

func TestInitWriter(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false)

	Debug("hidden")
	Warn("cache entry unreadable", "key", "userData")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(out, "cache entry unreadable") || !strings.Contains(out, "userData") {
		t.Errorf("warning missing from output: %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
