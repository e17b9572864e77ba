package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRedactsValues(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	log.Debug("answer collected", "key", "DB_PASSWORD", "value", "hunter2")
	log.Sync()

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Fatalf("value leaked into log: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") || !strings.Contains(out, "DB_PASSWORD") {
		t.Fatalf("expected redacted value and key name: %s", out)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown", "set", "web")
	log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug/info should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("expected warning in output: %s", out)
	}
}

func TestSanitizeOddKVs(t *testing.T) {
	got := sanitizeKVs([]any{"set", "web", "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("unexpected kvs: %v", got)
	}
}
