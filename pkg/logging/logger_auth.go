package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// AuthLogger records authentication attempts. Passwords must never be passed to it.
type AuthLogger interface {
	// LogAuth logs an authentication operation and its outcome
	LogAuth(operation string, user string, status string, details ...interface{})
	// Close releases the underlying file, if any
	Close() error
}

type authLogger struct {
	logger *log.Logger
	closer io.Closer
}

// NewAuthLogger creates a new auth logger; an empty path discards all entries
func NewAuthLogger(logPath string) (AuthLogger, error) {
	if logPath == "" {
		return newAuthLogger(io.Discard, nil), nil
	}

	f, err := openLogFile(logPath)
	if err != nil {
		return nil, fmt.Errorf("opening auth log file: %w", err)
	}
	return newAuthLogger(f, f), nil
}

// NewAuthLoggerWriter creates an auth logger writing to w
func NewAuthLoggerWriter(w io.Writer) AuthLogger {
	return newAuthLogger(w, nil)
}

func newAuthLogger(w io.Writer, closer io.Closer) *authLogger {
	return &authLogger{
		logger: log.New(w, "", 0),
		closer: closer,
	}
}

func (l *authLogger) LogAuth(operation string, user string, status string, details ...interface{}) {
	var parts []string
	parts = append(parts, fmt.Sprintf("op=%s", formatValue(operation)))
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(toString(user))))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	if kv := formatKeyvals(details); kv != "" {
		parts = append(parts, kv)
	}

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}

func (l *authLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
