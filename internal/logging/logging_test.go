package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "autotype.log")
	logger, flush, err := New(Config{Level: "info", File: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("typing started")
	logger.Debug("hidden")
	flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"typing started"`) {
		t.Fatalf("expected json entry, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered at info level")
	}
}

func TestNewConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	logger, flush, err := New(Config{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("event dropped")
	flush()
	if strings.Contains(buf.String(), "quiet") {
		t.Fatalf("info entry should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "event dropped") {
		t.Fatalf("expected warn entry, got %q", buf.String())
	}
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	logger, flush, err := New(Config{})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Error("nowhere")
	flush()
}

func TestParseLevel(t *testing.T) {
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	level, err := ParseLevel("")
	if err != nil || level.String() != DefaultLevel {
		t.Fatalf("expected default level, got %v %v", level, err)
	}
}
