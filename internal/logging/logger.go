// Package logging provides the leveled, optionally colored logger used by
// every command. Output goes to stdout (errors to stderr) and, when
// configured, to an append-only log file without color codes.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cliang-dev/vpress/internal/term"
)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	file    *os.File
}

// NewLogger configures terminal colors from colorMode and optionally opens
// logFile for appending. Call Close when done if logFile was set.
func NewLogger(colorMode term.Mode, verbose bool, logFile string) (*Logger, error) {
	term.Configure(colorMode)
	l := &Logger{verbose: verbose}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Score logs at SCORE level (magenta). Used for VMAF results so they stand
// out in interleaved worker output.
func (l *Logger) Score(format string, args ...interface{}) {
	l.line("SCORE", term.Magenta, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}
