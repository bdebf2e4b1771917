package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/natefinch/lumberjack.v2"
)

func TestCloseLogFlushesAndDetaches(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "cmexport.log")
	logFile := &lumberjack.Logger{Filename: path}
	log.SetOutput(io.MultiWriter(io.Discard, logFile))

	log.Printf("Export run-1 failed: boom")
	closeLog(logFile)

	if log.Writer() != os.Stderr {
		t.Error("Expected log output restored to stderr")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Export run-1 failed: boom") {
		t.Errorf("Expected failure line in log file, got %q", string(data))
	}
}

func TestCloseLogWithoutFile(t *testing.T) {
	// No rotating file configured is a no-op.
	closeLog(nil)
}
