// Package logging builds slog loggers for cubelet commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// New returns a text logger writing to w.
func New(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SessionLog is a JSON-lines log file for one interactive session.
type SessionLog struct {
	*slog.Logger
	file *os.File
}

// OpenSessionLog creates dir/session_YYYYMMDD_HHMMSS.jsonl.
func OpenSessionLog(dir string, level slog.Level) (*SessionLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("session_%s.jsonl", time.Now().Format("20060102_150405"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return &SessionLog{Logger: logger, file: f}, nil
}

// Path returns the log file path.
func (l *SessionLog) Path() string {
	return l.file.Name()
}

// Close closes the log file.
func (l *SessionLog) Close() error {
	return l.file.Close()
}
