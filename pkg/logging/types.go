package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	// LogLevelDebug is for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is for error messages
	LogLevelError LogLevel = "error"
	// LogLevelPanic is for panic messages
	LogLevelPanic LogLevel = "panic"
)

var levelOrder = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
	LogLevelPanic: 4,
}

// ParseLevel converts a configuration string into a LogLevel
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if level == "" {
		return LogLevelInfo, nil
	}
	if _, ok := levelOrder[level]; !ok {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

var (
	// App is the global application logger
	App *AppLogger
	// Auth is the global authentication audit logger
	Auth AuthLogger
)

func init() {
	setDefaults()
}

// setDefaults installs the default loggers: app to stderr at info, audit discarded
func setDefaults() {
	App = newAppLogger(os.Stderr, nil, LogLevelInfo)
	Auth = newAuthLogger(io.Discard, nil)
}

// Initialize sets up the global loggers
func Initialize(authLogPath, appLogPath string, level LogLevel) error {
	if level == "" {
		level = LogLevelInfo
	}

	newAuth, err := NewAuthLogger(authLogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize auth logger: %w", err)
	}

	newApp, err := NewAppLogger(appLogPath, level)
	if err != nil {
		newAuth.Close()
		return fmt.Errorf("failed to initialize app logger: %w", err)
	}

	Auth = newAuth
	App = newApp
	return nil
}

// Close releases any files held by the global loggers and reinstalls the defaults
func Close() error {
	authErr := Auth.Close()
	appErr := App.Close()
	setDefaults()
	if authErr != nil {
		return authErr
	}
	return appErr
}

// openLogFile opens path for appending, creating its directory if needed
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// formatValue formats a value for logfmt, quoting if necessary
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	// Quote if contains space, equals, or quotes
	if strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

// formatKeyvals renders alternating key/value pairs as logfmt; a trailing odd key is dropped
func formatKeyvals(keyvals []interface{}) string {
	var parts []string
	for i := 0; i+1 < len(keyvals); i += 2 {
		parts = append(parts, fmt.Sprintf("%s=%s", toString(keyvals[i]), formatValue(toString(keyvals[i+1]))))
	}
	return strings.Join(parts, " ")
}
