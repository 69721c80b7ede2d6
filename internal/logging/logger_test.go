package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// decodeLine parses one JSON log line into a generic map.
func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return entry
}

func TestNewLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test-component")

	logger.Info("hello", String("operator", "+"), Int("count", 3))

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
	if entry["component"] != "test-component" {
		t.Errorf("component = %v, want test-component", entry["component"])
	}
	if entry["operator"] != "+" {
		t.Errorf("operator = %v, want +", entry["operator"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entry["count"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("timestamp field missing")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		want string
	}{
		{"debug", func(l Logger) { l.Debug("m") }, "debug"},
		{"info", func(l Logger) { l.Info("m") }, "info"},
		{"warn", func(l Logger) { l.Warn("m") }, "warn"},
		{"error", func(l Logger) { l.Error("m", nil) }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(&buf, "lvl"))
			entry := decodeLine(t, strings.TrimSpace(buf.String()))
			if entry["level"] != tt.want {
				t.Errorf("level = %v, want %v", entry["level"], tt.want)
			}
		})
	}
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "err")

	logger.Error("evaluation failed", errors.New("division by zero"))

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["error"] != "division by zero" {
		t.Errorf("error field = %v, want division by zero", entry["error"])
	}
}

func TestFieldEncoders(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "fields")

	logger.Info("types",
		Uint64("big", 42),
		Float64("ratio", 0.5),
		Err(errors.New("oops")),
	)

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["big"] != float64(42) {
		t.Errorf("big = %v, want 42", entry["big"])
	}
	if entry["ratio"] != 0.5 {
		t.Errorf("ratio = %v, want 0.5", entry["ratio"])
	}
	if entry["error"] != "oops" {
		t.Errorf("error = %v, want oops", entry["error"])
	}
}

func TestPrintfCompatibility(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "compat")

	logger.Printf("processed %d lines\n", 7)
	logger.Println("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2", len(lines))
	}
	if entry := decodeLine(t, lines[0]); entry["message"] != "processed 7 lines" {
		t.Errorf("Printf message = %v, want %q", entry["message"], "processed 7 lines")
	}
	if entry := decodeLine(t, lines[1]); entry["message"] != "done" {
		t.Errorf("Println message = %v, want done", entry["message"])
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic with any combination of arguments.
	var logger Logger = NopLogger{}
	logger.Debug("a", String("k", "v"))
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d", errors.New("e"))
	logger.Printf("f %d", 1)
	logger.Println("g")
}
