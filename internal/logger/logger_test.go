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

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init()")
	}

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
}

func TestLogFile(t *testing.T) {
	got := LogFile("/tmp/cfg")
	want := filepath.Join("/tmp/cfg", "logs", "mealplan.log")
	if got != want {
		t.Errorf("LogFile() = %q, want %q", got, want)
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	Info("hidden info")
	Warn("visible warning", "recipes", 3)

	out := buf.String()
	if strings.Contains(out, "hidden info") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, "recipes=3") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "mealplan") {
		t.Errorf("output missing prefix: %q", out)
	}
}

func TestInit_DebugMode(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Debug: true, Output: &buf}); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	Debug("pool sizes", "breakfast", 7)
	if !strings.Contains(buf.String(), "pool sizes") {
		t.Errorf("debug message missing in debug mode: %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	With("plan_id", "abc").Warn("slow plan")
	if !strings.Contains(buf.String(), "plan_id=abc") {
		t.Errorf("child logger dropped keyvals: %q", buf.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	With("k", "v").Warn("discarded")
}
