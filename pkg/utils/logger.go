package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config value such as "debug" or "WARN" to a LogLevel.
// Unknown values resolve to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

// Logger provides structured logging functionality
type Logger struct {
	level      LogLevel
	mu         sync.Mutex
	useColor   bool
	timestamps bool
	caller     bool
	output     *log.Logger
	exit       func(int)
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      LogLevel
	UseColor   bool
	Timestamps bool
	Caller     bool
	Output     io.Writer
}

// DefaultLoggerConfig returns default logger configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      INFO,
		UseColor:   true,
		Timestamps: true,
		Caller:     false,
		Output:     os.Stdout,
	}
}

// NewLogger creates a new logger with default configuration
func NewLogger() *Logger {
	return NewLoggerWithConfig(DefaultLoggerConfig())
}

// NewLoggerWithConfig creates a new logger with custom configuration
func NewLoggerWithConfig(config *LoggerConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		level:      config.Level,
		useColor:   config.UseColor,
		timestamps: config.Timestamps,
		caller:     config.Caller,
		output:     log.New(out, "", 0),
		exit:       os.Exit,
	}
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) enabled(level LogLevel) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) log(level LogLevel, msg string, fields ...interface{}) {
	if !l.enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var sb strings.Builder

	if l.timestamps {
		l.colored(&sb, colorGray, "["+time.Now().Format("2006-01-02 15:04:05.000")+"] ")
	}

	l.colored(&sb, l.getLevelColor(level), "["+level.String()+"] ")

	if l.caller {
		if _, file, line, ok := runtime.Caller(2); ok {
			parts := strings.Split(file, "/")
			l.colored(&sb, colorCyan, fmt.Sprintf("[%s:%d] ", parts[len(parts)-1], line))
		}
	}

	sb.WriteString(msg)

	if len(fields) > 0 {
		sb.WriteString(" ")
		l.formatFields(&sb, fields...)
	}

	l.output.Println(sb.String())

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) colored(sb *strings.Builder, color, s string) {
	if l.useColor {
		sb.WriteString(color)
	}
	sb.WriteString(s)
	if l.useColor {
		sb.WriteString(colorReset)
	}
}

// formatFields formats key-value pairs for logging
func (l *Logger) formatFields(sb *strings.Builder, fields ...interface{}) {
	if len(fields)%2 != 0 {
		sb.WriteString("INVALID_FIELDS")
		return
	}

	for i := 0; i < len(fields); i += 2 {
		if i > 0 {
			sb.WriteString(" ")
		}

		l.colored(sb, colorCyan, fmt.Sprintf("%v", fields[i]))
		sb.WriteString("=")

		switch v := fields[i+1].(type) {
		case string:
			sb.WriteString(fmt.Sprintf("%q", v))
		case error:
			l.colored(sb, colorRed, fmt.Sprintf("%q", v.Error()))
		default:
			sb.WriteString(fmt.Sprintf("%v", v))
		}
	}
}

func (l *Logger) getLevelColor(level LogLevel) string {
	switch level {
	case DEBUG:
		return colorGray
	case INFO:
		return colorGreen
	case WARN:
		return colorYellow
	case ERROR:
		return colorRed
	case FATAL:
		return colorPurple
	default:
		return colorWhite
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log(DEBUG, msg, fields...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log(INFO, msg, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log(WARN, msg, fields...)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.log(ERROR, msg, fields...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.log(FATAL, msg, fields...)
}

// LoggerWithFields is a logger carrying preset key/value pairs
type LoggerWithFields struct {
	logger *Logger
	fields []interface{}
}

// WithFields returns a logger with preset fields
func (l *Logger) WithFields(fields ...interface{}) *LoggerWithFields {
	return &LoggerWithFields{
		logger: l,
		fields: fields,
	}
}

func (lf *LoggerWithFields) merge(fields []interface{}) []interface{} {
	all := make([]interface{}, 0, len(lf.fields)+len(fields))
	all = append(all, lf.fields...)
	return append(all, fields...)
}

// Debug logs a debug message with preset fields
func (lf *LoggerWithFields) Debug(msg string, fields ...interface{}) {
	lf.logger.log(DEBUG, msg, lf.merge(fields)...)
}

// Info logs an info message with preset fields
func (lf *LoggerWithFields) Info(msg string, fields ...interface{}) {
	lf.logger.log(INFO, msg, lf.merge(fields)...)
}

// Warn logs a warning message with preset fields
func (lf *LoggerWithFields) Warn(msg string, fields ...interface{}) {
	lf.logger.log(WARN, msg, lf.merge(fields)...)
}

// Error logs an error message with preset fields
func (lf *LoggerWithFields) Error(msg string, fields ...interface{}) {
	lf.logger.log(ERROR, msg, lf.merge(fields)...)
}

// LogRequest logs an HTTP request, raising the level for client and server errors
func (l *Logger) LogRequest(method, path string, statusCode int, duration time.Duration, fields ...interface{}) {
	allFields := append([]interface{}{
		"method", method,
		"path", path,
		"status", statusCode,
		"duration_ms", duration.Milliseconds(),
	}, fields...)

	level := INFO
	if statusCode >= 500 {
		level = ERROR
	} else if statusCode >= 400 {
		level = WARN
	}

	l.log(level, "HTTP Request", allFields...)
}

// Timer helps measure execution time
type Timer struct {
	start  time.Time
	logger *Logger
	name   string
	fields []interface{}
}

// StartTimer starts a new timer
func (l *Logger) StartTimer(name string, fields ...interface{}) *Timer {
	return &Timer{
		start:  time.Now(),
		logger: l,
		name:   name,
		fields: fields,
	}
}

// Stop stops the timer, logs the duration at DEBUG and returns it
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)
	allFields := append(t.fields, "duration_ms", duration.Milliseconds())
	t.logger.log(DEBUG, fmt.Sprintf("Timer: %s", t.name), allFields...)
	return duration
}

// Package-level logger used by the printf-style helpers below.

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLogger()
)

// SetDefault replaces the package-level logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the package-level logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Debug logs a formatted debug message on the default logger
func Debug(format string, args ...interface{}) {
	Default().log(DEBUG, fmt.Sprintf(format, args...))
}

// Info logs a formatted info message on the default logger
func Info(format string, args ...interface{}) {
	Default().log(INFO, fmt.Sprintf(format, args...))
}

// Warn logs a formatted warning on the default logger
func Warn(format string, args ...interface{}) {
	Default().log(WARN, fmt.Sprintf(format, args...))
}

// Error logs a formatted error on the default logger
func Error(format string, args ...interface{}) {
	Default().log(ERROR, fmt.Sprintf(format, args...))
}

// Fatal logs a formatted message on the default logger and exits
func Fatal(format string, args ...interface{}) {
	Default().log(FATAL, fmt.Sprintf(format, args...))
}
