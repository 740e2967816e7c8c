package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileAppendsJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	logger, closeFn, err := File(dir, "info")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	closeFn()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level:\n%s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON info line, got:\n%s", out)
	}
}

func TestConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Console(&buf, "warn")
	if err != nil {
		t.Fatalf("Console: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := Console(&bytes.Buffer{}, "shouty"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, _, err := File(t.TempDir(), "shouty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
