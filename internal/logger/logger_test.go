package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestInit(t *testing.T) {
	// Test non-verbose (default)
	Init(false)
	if GetLevel() != LevelWarn {
		t.Errorf("Init(false) should set level to LevelWarn, got %v", GetLevel())
	}

	// Test verbose
	Init(true)
	if GetLevel() != LevelDebug {
		t.Errorf("Init(true) should set level to LevelDebug, got %v", GetLevel())
	}

	// Reset
	Init(false)
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.level.String() != tt.expected {
				t.Errorf("Level(%d).String() = %v, want %v", tt.level, tt.level.String(), tt.expected)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetOutput(os.Stderr)
		SetLevel(LevelWarn)
	}()

	tests := []struct {
		name       string
		level      Level
		logFunc    func(string, ...interface{})
		shouldShow bool
	}{
		{"debug at debug level", LevelDebug, Debug, true},
		{"info at debug level", LevelDebug, Info, true},
		{"warn at debug level", LevelDebug, Warn, true},
		{"error at debug level", LevelDebug, Error, true},
		{"debug at info level", LevelInfo, Debug, false},
		{"info at info level", LevelInfo, Info, true},
		{"debug at warn level", LevelWarn, Debug, false},
		{"info at warn level", LevelWarn, Info, false},
		{"warn at warn level", LevelWarn, Warn, true},
		{"error at warn level", LevelWarn, Error, true},
		{"debug at error level", LevelError, Debug, false},
		{"warn at error level", LevelError, Warn, false},
		{"error at error level", LevelError, Error, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)

			tt.logFunc("test message")

			hasOutput := buf.Len() > 0
			if hasOutput != tt.shouldShow {
				t.Errorf("got output=%v, want output=%v", hasOutput, tt.shouldShow)
			}
		})
	}
}

func TestLogFormatting(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelDebug)
	defer func() {
		SetOutput(os.Stderr)
		SetLevel(LevelWarn)
	}()

	Debug("test %s %d", "message", 42)
	output := buf.String()

	if !strings.Contains(output, "[DEBUG]") {
		t.Errorf("output should contain level prefix, got %q", output)
	}
	if !strings.Contains(output, "test message 42") {
		t.Errorf("output should contain formatted message, got %q", output)
	}
}

func TestLogFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelDebug)
	defer func() {
		SetOutput(os.Stderr)
		SetLevel(LevelWarn)
	}()

	DebugFields("registry loaded", map[string]interface{}{
		"apps": 3,
		"env":  "production",
	})

	output := buf.String()
	if !strings.Contains(output, "registry loaded") {
		t.Errorf("output should contain message, got %q", output)
	}
	// Fields are sorted by key
	if !strings.Contains(output, "apps=3 env=production") {
		t.Errorf("output should contain sorted fields, got %q", output)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	LogError(nil, "should not log")
	if buf.Len() != 0 {
		t.Error("LogError(nil) should produce no output")
	}
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelDebug)
	defer func() {
		SetOutput(os.Stderr)
		SetLevel(LevelWarn)
	}()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Info("message %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Count(buf.String(), "\n")
	if lines != 10 {
		t.Errorf("expected 10 log lines, got %d", lines)
	}
}
