package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app.log")

	log, err := New(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("assessment evaluated")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at the fallback info level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled")
	}
}
