package process

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStart_CapturesOutputToLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	h, err := Start("/bin/sh", []string{"-c", "echo hello; echo oops >&2"}, dir, logPath)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit within 5s")
	}

	if h.ExitErr() != nil {
		t.Errorf("ExitErr() = %v, want nil", h.ExitErr())
	}
	if h.LogPath() != logPath {
		t.Errorf("LogPath() = %q, want %q", h.LogPath(), logPath)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "hello") {
		t.Errorf("log missing stdout, got %q", out)
	}
	if !strings.Contains(out, "oops") {
		t.Errorf("log missing stderr, got %q", out)
	}
}

func TestStart_UsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	h, err := Start("/bin/sh", []string{"-c", "pwd"}, dir, logPath)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	<-h.Done()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	// Resolve symlinks (macOS TempDir lives under /private).
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	got := strings.TrimSpace(string(data))
	if got != dir && got != resolved {
		t.Errorf("child pwd = %q, want %q", got, dir)
	}
}

func TestStart_TruncatesPreviousLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")
	if err := os.WriteFile(logPath, []byte("stale content from a previous run\n"), 0644); err != nil {
		t.Fatalf("seeding log: %v", err)
	}

	h, err := Start("/bin/sh", []string{"-c", "echo fresh"}, dir, logPath)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	<-h.Done()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Errorf("log was not truncated: %q", string(data))
	}
}

func TestStart_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	if _, err := Start(filepath.Join(dir, "does-not-exist"), nil, dir, logPath); err == nil {
		t.Fatal("Start() with missing binary: want error, got nil")
	}
}

func TestStart_UnwritableLogPath(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "missing-subdir", "out.log")

	if _, err := Start("/bin/sh", []string{"-c", "true"}, dir, logPath); err == nil {
		t.Fatal("Start() with unwritable log path: want error, got nil")
	}
}
