// Package logging provides the leveled logger used by the k2cli commands,
// adapted from junjiewwang-perf-analysis's pkg/utils.Logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a configuration string into a Level, defaulting to Info.
func ParseLevel(level string) Level {
	switch level {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the leveled, structured logging interface carried through the
// build/scan/aggregate CLI path.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	WithField(key string, value interface{}) Logger
}

// DefaultLogger writes leveled, field-annotated lines to an io.Writer.
type DefaultLogger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	fields map[string]interface{}
}

// NewDefaultLogger creates a DefaultLogger writing at or above level.
func NewDefaultLogger(level Level, output io.Writer) *DefaultLogger {
	return &DefaultLogger{level: level, output: output, fields: make(map[string]interface{})}
}

// NewStderrLogger is the CLI's default logger, writing to os.Stderr so
// stdout stays reserved for command output (scan/aggregate results).
func NewStderrLogger(level Level) *DefaultLogger {
	return NewDefaultLogger(level, os.Stderr)
}

func (l *DefaultLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *DefaultLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *DefaultLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *DefaultLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

// WithField returns a new logger carrying key=value in addition to any
// fields already attached.
func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	next := &DefaultLogger{level: l.level, output: l.output, fields: make(map[string]interface{}, len(l.fields)+1)}
	for k, v := range l.fields {
		next.fields[k] = v
	}
	next.fields[key] = value
	return next
}

func (l *DefaultLogger) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	formatted := fmt.Sprintf(msg, args...)

	fieldStr := ""
	for k, v := range l.fields {
		fieldStr += fmt.Sprintf(" %s=%v", k, v)
	}

	fmt.Fprintf(l.output, "[%s] [%s]%s %s\n", timestamp, level.String(), fieldStr, formatted)
}

// NullLogger is a Logger that discards every message.
type NullLogger struct{}

func (NullLogger) Debug(string, ...interface{})         {}
func (NullLogger) Info(string, ...interface{})          {}
func (NullLogger) Warn(string, ...interface{})          {}
func (NullLogger) Error(string, ...interface{})         {}
func (n NullLogger) WithField(string, interface{}) Logger { return n }
