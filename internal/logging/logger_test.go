package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cliang-dev/vpress/internal/term"
)

func TestNewLogger_NoFile(t *testing.T) {
	l, err := NewLogger(term.ModeNever, false, "")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "vpress.log")
	l, err := NewLogger(term.ModeNever, false, logFile)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Score("vmaf result line")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(logFile)
	if !bytes.Contains(b, []byte("INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
	if !bytes.Contains(b, []byte("SCORE")) {
		t.Errorf("missing SCORE line: %s", string(b))
	}
}

func TestLogger_DebugGatedByVerbose(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "quiet.log")
	l, err := NewLogger(term.ModeNever, false, logFile)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("should not appear")
	l.Close()
	b, _ := os.ReadFile(logFile)
	if bytes.Contains(b, []byte("should not appear")) {
		t.Errorf("debug line written despite verbose=false: %s", string(b))
	}
}
