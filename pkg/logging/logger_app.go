package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	golog "github.com/fclairamb/go-log"
)

// AppLogger implements the go-log.Logger interface. Packages that take a
// go-log.Logger, such as ftpserverlib, can be handed App or a logger derived
// from it with With.
type AppLogger struct {
	level   LogLevel
	logger  *log.Logger
	closer  io.Closer // nil if logging to stderr
	context []interface{}
}

var _ golog.Logger = (*AppLogger)(nil)

// NewAppLogger creates a new application logger writing to logPath, or stderr when empty
func NewAppLogger(logPath string, level LogLevel) (*AppLogger, error) {
	if logPath == "" {
		return newAppLogger(os.Stderr, nil, level), nil
	}

	f, err := openLogFile(logPath)
	if err != nil {
		return nil, err
	}
	return newAppLogger(f, f, level), nil
}

// NewAppLoggerWriter creates an application logger writing to w
func NewAppLoggerWriter(w io.Writer, level LogLevel) *AppLogger {
	return newAppLogger(w, nil, level)
}

func newAppLogger(w io.Writer, closer io.Closer, level LogLevel) *AppLogger {
	return &AppLogger{
		level:  level,
		logger: log.New(w, "", 0), // No flags, we'll handle formatting ourselves
		closer: closer,
	}
}

func (l *AppLogger) shouldLog(level LogLevel) bool {
	return levelOrder[level] >= levelOrder[l.level]
}

func (l *AppLogger) log(level LogLevel, message string, keyvals ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	all := append(append([]interface{}{}, l.context...), keyvals...)
	line := fmt.Sprintf("%s %s: %s", time.Now().UTC().Format("2006-01-02 15:04:05 -0700"), level, message)
	if kv := formatKeyvals(all); kv != "" {
		line += " " + kv
	}
	l.logger.Print(line)
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}

	str := fmt.Sprintf("%v", v)
	str = strings.ReplaceAll(str, "\n", " ")
	str = strings.ReplaceAll(str, "\r", " ")
	str = strings.ReplaceAll(str, "\t", " ")
	// Collapse multiple spaces into one
	return strings.Join(strings.Fields(str), " ")
}

// Debug implements go-log.Logger
func (l *AppLogger) Debug(message string, keyvals ...interface{}) {
	l.log(LogLevelDebug, message, keyvals...)
}

// Info implements go-log.Logger
func (l *AppLogger) Info(message string, keyvals ...interface{}) {
	l.log(LogLevelInfo, message, keyvals...)
}

// Warn implements go-log.Logger
func (l *AppLogger) Warn(message string, keyvals ...interface{}) {
	l.log(LogLevelWarn, message, keyvals...)
}

// Error implements go-log.Logger
func (l *AppLogger) Error(message string, keyvals ...interface{}) {
	l.log(LogLevelError, message, keyvals...)
}

// Panic implements go-log.Logger. It logs and does not panic.
func (l *AppLogger) Panic(message string, keyvals ...interface{}) {
	l.log(LogLevelPanic, message, keyvals...)
}

// With implements go-log.Logger, returning a logger that prefixes keyvals to every entry
func (l *AppLogger) With(keyvals ...interface{}) golog.Logger {
	return &AppLogger{
		level:   l.level,
		logger:  l.logger,
		context: append(append([]interface{}{}, l.context...), keyvals...),
	}
}

// IsDebug returns true if the logger is at debug level
func (l *AppLogger) IsDebug() bool {
	return l.level == LogLevelDebug
}

// Close closes the underlying log file, if any
func (l *AppLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
