package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestMapLevelToZapLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected string
	}{
		{"debug level", LevelDebug, "debug"},
		{"info level", LevelInfo, "info"},
		{"warn level", LevelWarn, "warn"},
		{"error level", LevelError, "error"},
		{"unknown level defaults to warn", LogLevel("unknown"), "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zapLevel := mapLevelToZapLevel(tt.level)
			if zapLevel.String() != tt.expected {
				t.Errorf("mapLevelToZapLevel() = %v, want %v", zapLevel.String(), tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"", LevelWarn, false},
		{"progress", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	Reset()
	defer Reset()

	if err := Init(Config{Level: LevelInfo, Format: "xml"}); err == nil {
		t.Fatal("Init() expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelWarn, Format: FormatConsole, Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("debug message")
	Info("info message")
	Warn("warn message", "key", "value")
	_ = Sync()

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn should be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, `"key": "value"`) {
		t.Errorf("warn message with fields missing, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("resolved locator", "locator", "classpath:a.txt")
	_ = Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "resolved locator" {
		t.Errorf("msg = %v, want %q", entry["msg"], "resolved locator")
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v, want debug", entry["level"])
	}
	if entry["locator"] != "classpath:a.txt" {
		t.Errorf("locator = %v, want classpath:a.txt", entry["locator"])
	}
}

func TestGetInitializesDefault(t *testing.T) {
	Reset()
	defer Reset()

	if Get() == nil {
		t.Fatal("Get() returned nil logger")
	}
	if With("component", "test") == nil {
		t.Fatal("With() returned nil logger")
	}
}
