// Package logging provides structured component logging for pagedriver.
//
// Loggers write to stderr by default, or to a shared log file when one is
// configured. Every line carries a timestamp, the run ID, the component
// name, and a level tag. There is no level filtering; callers choose what
// to emit.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes structured log entries for a single component.
type Logger struct {
	runID     string
	component string
	file      *os.File
	logger    *log.Logger
	mu        sync.Mutex
	closeOnce sync.Once
}

var (
	// runID identifies the current process execution across components.
	runID     string
	runIDOnce sync.Once
)

// getRunID returns or creates the run ID for this process.
func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()[:8]
	})
	return runID
}

// NewLogger creates a logger for a component, writing to stderr.
func NewLogger(component string) *Logger {
	return &Logger{
		runID:     getRunID(),
		component: component,
		logger:    log.New(os.Stderr, "", 0),
	}
}

// NewFileLogger creates a logger for a component that appends to the file
// at path. Multiple components may share the same file. If the file cannot
// be opened the logger falls back to stderr and the error is returned so
// the caller can surface it.
func NewFileLogger(component, path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fallback := NewLogger(component)
		fallback.Warnf("file logging unavailable, using stderr: %v", err)
		return fallback, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		runID:     getRunID(),
		component: component,
		file:      file,
		logger:    log.New(file, "", 0),
	}, nil
}

// formatEntry builds one log line with timestamp, run ID, component, and level.
func (l *Logger) formatEntry(level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s", timestamp, l.runID, l.component, level, message)
}

func (l *Logger) emit(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Println(l.formatEntry(level, fmt.Sprintf(format, v...)))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.emit("DEBUG", format, v...)
}

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.emit("INFO", format, v...)
}

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.emit("WARN", format, v...)
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.emit("ERROR", format, v...)
}

// Writer returns the destination this logger writes to.
func (l *Logger) Writer() io.Writer {
	if l.file != nil {
		return l.file
	}
	return os.Stderr
}

// RunID returns the process-wide run ID.
func (l *Logger) RunID() string {
	return l.runID
}

// Close closes the log file if one is open. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
