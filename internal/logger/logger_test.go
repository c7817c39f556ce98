package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quill.log")

	log, err := New(path, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	Module(log, "editor").Info("content saved")
	log.Debug("not written at info level")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "content saved" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["module"] != "editor" {
		t.Errorf("module = %v", entry["module"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.log")

	log, err := New(path, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	log.Debug("visible")
	log.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "visible") {
		t.Error("debug entries should be written when debug is on")
	}
}

func TestModule_NilLogger(t *testing.T) {
	if Module(nil, "x") == nil {
		t.Error("Module(nil) should return a no-op logger")
	}
}
