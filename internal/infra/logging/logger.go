// Package logging provides file-based logging for kanban.
// Entries go to a global log file (.kanban/logs/kanban.log) and, when they
// concern one work item, to that item's log file (.kanban/logs/item-N.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/kanban/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes leveled log lines to files under the kanban directory.
// Fields are ordered to minimize memory padding.
type Logger struct {
	mirror     io.Writer
	globalFile *os.File
	itemFiles  map[int]*os.File
	kanbanDir  string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes to the kanban log directory.
// If kanbanDir is empty, file logging is disabled.
func New(kanbanDir string, level slog.Level) *Logger {
	return &Logger{
		kanbanDir: kanbanDir,
		level:     level,
		itemFiles: make(map[int]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetMirror copies every accepted entry to w as well, e.g. stderr while serving.
func (l *Logger) SetMirror(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mirror = w
}

// openLog opens path for appending, creating the logs directory if needed.
func (l *Logger) openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Join(l.kanbanDir, "logs"), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// globalLog returns the global log file. Caller holds l.mu.
func (l *Logger) globalLog() (*os.File, error) {
	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLog(domain.GlobalLogPath(l.kanbanDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// itemLog returns the log file for itemID. Caller holds l.mu.
func (l *Logger) itemLog(itemID int) (*os.File, error) {
	if f, ok := l.itemFiles[itemID]; ok {
		return f, nil
	}
	f, err := l.openLog(domain.ItemLogPath(l.kanbanDir, itemID))
	if err != nil {
		return nil, err
	}
	l.itemFiles[itemID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.itemFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.itemFiles, id)
	}
	return lastErr
}

// formatLog formats one entry.
// Format: [2025-12-30 09:32:51] [INFO] [item-1] [category] message
func formatLog(t time.Time, level slog.Level, itemID int, category, msg string) string {
	scope := "global"
	if itemID > 0 {
		scope = fmt.Sprintf("item-%d", itemID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, if itemID > 0, to the item log.
func (l *Logger) log(level slog.Level, itemID int, category, msg string) {
	if level < l.level {
		return
	}
	entry := formatLog(time.Now(), level, itemID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, entry)
	}
	if l.kanbanDir == "" {
		return
	}
	if gf, err := l.globalLog(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if itemID > 0 {
		if f, err := l.itemLog(itemID); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(itemID int, category, msg string) {
	l.log(slog.LevelInfo, itemID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(itemID int, category, msg string) {
	l.log(slog.LevelDebug, itemID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(itemID int, category, msg string) {
	l.log(slog.LevelWarn, itemID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(itemID int, category, msg string) {
	l.log(slog.LevelError, itemID, category, msg)
}
