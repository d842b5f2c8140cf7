// Package faillog appends failed-dispatch lines to a plain-text file. The
// line format is consumed by existing tooling, so it is fixed here rather
// than routed through the structured logger.
package faillog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Log is an append-only failure log.
type Log struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// Open creates or opens the log file for appending.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Log{file: file, now: time.Now}, nil
}

// Append writes one failure line:
//
//	[timestamp] Failed to send notification to <user> for task <title>: <message>
func (l *Log) Append(username, taskTitle, detail string) error {
	if l == nil || l.file == nil {
		return os.ErrClosed
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] Failed to send notification to %s for task %s: %s\n",
		l.now().Format(time.RFC3339), username, taskTitle, detail)
	_, err := l.file.WriteString(line)
	return err
}

// Close closes the underlying file.
func (l *Log) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.file.Close()
	l.file = nil
	return err
}
